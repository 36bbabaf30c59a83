package store

import (
	"sync"

	"github.com/parkwise/parking-client/internal/core/domain"
)

// Memory is an in-process CredentialStore. It satisfies the same contract as
// the durable backends minus persistence; used in tests and one-shot runs.
type Memory struct {
	mu   sync.Mutex
	cred domain.Credential
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Get() (domain.Credential, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cred, nil
}

func (m *Memory) Set(partial domain.Credential) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cred = m.cred.Merge(partial)
	return nil
}

func (m *Memory) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cred = domain.Credential{}
	return nil
}
