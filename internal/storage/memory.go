package storage

import (
	"context"
	"maps"
	"sync"
)

// MemoryBackend keeps slots in process memory
type MemoryBackend struct {
	mu     sync.Mutex
	slots  map[string]string
	writes int
}

// NewMemoryBackend creates an empty in-memory backend
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{slots: make(map[string]string)}
}

// ReadSlots returns the requested slots that exist
func (m *MemoryBackend) ReadSlots(_ context.Context, keys []string) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string]string, len(keys))
	for _, k := range keys {
		if v, ok := m.slots[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

// WriteSlots overwrites the given slots
func (m *MemoryBackend) WriteSlots(_ context.Context, slots map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	maps.Copy(m.slots, slots)
	m.writes++
	return nil
}

// Writes returns how many WriteSlots calls have been applied
func (m *MemoryBackend) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// Raw returns a copy of the stored slots
func (m *MemoryBackend) Raw() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return maps.Clone(m.slots)
}

// Close is a no-op
func (m *MemoryBackend) Close() error {
	return nil
}
