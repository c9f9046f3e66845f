package cart

import (
	"context"
	"sync"
)

// Storage is the durable key-value port cart snapshots are written to.
// Implementations return ok=false from Load when the key has never been
// written; a snapshot that exists but fails to decode is handled by the
// caller, never here.
type Storage interface {
	Load(ctx context.Context, key string) (payload []byte, ok bool, err error)
	Save(ctx context.Context, key string, payload []byte) error
}

// MemoryStorage is the in-process Storage used by tests and the dev
// backend. Writes are last-write-wins, same as the real backends.
type MemoryStorage struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: make(map[string][]byte)}
}

func (m *MemoryStorage) Load(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	payload, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(payload))
	copy(out, payload)
	return out, true, nil
}

func (m *MemoryStorage) Save(_ context.Context, key string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]byte, len(payload))
	copy(out, payload)
	m.data[key] = out
	return nil
}
