// Package store provides the durable credential store backends: a JSON file
// (the local-storage analog, optionally sealed at rest), a Redis hash for
// shared headless deployments, and an in-memory store for tests.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/parkwise/parking-client/internal/core/domain"
)

// File is a CredentialStore backed by a single JSON file. Writes go through
// a temp file and rename so a crash never leaves a torn record. When a
// passphrase is configured the record is sealed with nacl/secretbox.
type File struct {
	path   string
	sealer *sealer

	mu sync.Mutex
}

// NewFile creates a file store at path. An empty passphrase means plaintext
// JSON on disk.
func NewFile(path, passphrase string) *File {
	f := &File{path: path}
	if passphrase != "" {
		f.sealer = newSealer(passphrase)
	}
	return f
}

// Get reads the stored credential. A missing file is an empty credential. A
// file that no longer parses is discarded, matching the behaviour of a
// corrupt browser-storage entry: the session simply becomes unauthenticated.
func (f *File) Get() (domain.Credential, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.readLocked()
}

// Set merges partial into the stored credential and persists the result.
func (f *File) Set(partial domain.Credential) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	current, err := f.readLocked()
	if err != nil {
		return err
	}
	return f.writeLocked(current.Merge(partial))
}

// Clear removes the backing file entirely.
func (f *File) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clear credentials: %w", err)
	}
	return nil
}

func (f *File) readLocked() (domain.Credential, error) {
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.Credential{}, nil
	}
	if err != nil {
		return domain.Credential{}, fmt.Errorf("read credentials: %w", err)
	}

	if f.sealer != nil {
		raw, err = f.sealer.open(raw)
		if err != nil {
			// Wrong passphrase or tampered file: surface it, do not wipe.
			return domain.Credential{}, fmt.Errorf("unseal credentials: %w", err)
		}
	}

	var cred domain.Credential
	if err := json.Unmarshal(raw, &cred); err != nil {
		_ = os.Remove(f.path)
		return domain.Credential{}, nil
	}
	return cred, nil
}

func (f *File) writeLocked(cred domain.Credential) error {
	raw, err := json.Marshal(cred)
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}
	if f.sealer != nil {
		raw, err = f.sealer.seal(raw)
		if err != nil {
			return fmt.Errorf("seal credentials: %w", err)
		}
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create credentials dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".credentials-*")
	if err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("write credentials: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return nil
}
