package session

import (
	"context"
	"sync"
)

// Backend is the storage medium behind a Session.
type Backend interface {
	// Load returns the stored bytes and whether the key exists.
	Load(ctx context.Context, key string) ([]byte, bool, error)
	Save(ctx context.Context, key string, value []byte) error
	// Remove must not fail for missing keys.
	Remove(ctx context.Context, key string) error
	Close() error
}

// MemoryBackend keeps sessions in process memory.
type MemoryBackend struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		values: make(map[string][]byte),
	}
}

// Load implements Backend.
func (b *MemoryBackend) Load(ctx context.Context, key string) ([]byte, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	value, ok := b.values[key]

	return value, ok, nil
}

// Save implements Backend.
func (b *MemoryBackend) Save(ctx context.Context, key string, value []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.values[key] = append([]byte(nil), value...)

	return nil
}

// Remove implements Backend.
func (b *MemoryBackend) Remove(ctx context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.values, key)

	return nil
}

// Close implements Backend.
func (b *MemoryBackend) Close() error {
	return nil
}
