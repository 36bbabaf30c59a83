package store

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/scrypt"
)

// scrypt parameters for deriving the secretbox key from the passphrase.
const (
	scryptN = 1 << 15
	scryptR = 8
	scryptP = 1
	saltLen = 16
)

var errSealed = errors.New("cannot decrypt credential file")

// envelope is the on-disk format of a sealed credential record.
type envelope struct {
	Salt  string `json:"salt"`
	Nonce string `json:"nonce"`
	Box   string `json:"box"`
}

// sealer encrypts/decrypts credential records with a passphrase-derived key.
// Each seal uses a fresh salt and nonce.
type sealer struct {
	passphrase string
}

func newSealer(passphrase string) *sealer {
	return &sealer{passphrase: passphrase}
}

func (s *sealer) seal(plaintext []byte) ([]byte, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	key, err := s.deriveKey(salt)
	if err != nil {
		return nil, err
	}

	var nonce [24]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, err
	}
	box := secretbox.Seal(nil, plaintext, &nonce, key)

	return json.Marshal(envelope{
		Salt:  base64.StdEncoding.EncodeToString(salt),
		Nonce: base64.StdEncoding.EncodeToString(nonce[:]),
		Box:   base64.StdEncoding.EncodeToString(box),
	})
}

func (s *sealer) open(data []byte) ([]byte, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: not a sealed record", errSealed)
	}

	salt, err := base64.StdEncoding.DecodeString(env.Salt)
	if err != nil {
		return nil, errSealed
	}
	rawNonce, err := base64.StdEncoding.DecodeString(env.Nonce)
	if err != nil || len(rawNonce) != 24 {
		return nil, errSealed
	}
	box, err := base64.StdEncoding.DecodeString(env.Box)
	if err != nil {
		return nil, errSealed
	}

	key, err := s.deriveKey(salt)
	if err != nil {
		return nil, err
	}

	var nonce [24]byte
	copy(nonce[:], rawNonce)
	plaintext, ok := secretbox.Open(nil, box, &nonce, key)
	if !ok {
		return nil, errSealed
	}
	return plaintext, nil
}

func (s *sealer) deriveKey(salt []byte) (*[32]byte, error) {
	raw, err := scrypt.Key([]byte(s.passphrase), salt, scryptN, scryptR, scryptP, 32)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	var key [32]byte
	copy(key[:], raw)
	return &key, nil
}
