package storage

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Backend. Nothing survives the process.
// Reads and writes can be made to fail, which tests use to simulate
// disabled or full storage.
type MemoryStore struct {
	mu     sync.Mutex
	data   map[string]string
	getErr error
	setErr error
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

// FailReads makes every later Get return err. A nil err clears it.
func (m *MemoryStore) FailReads(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getErr = err
}

// FailWrites makes every later Set return err. A nil err clears it.
func (m *MemoryStore) FailWrites(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setErr = err
}

func (m *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

func (m *MemoryStore) Close() error {
	return nil
}
