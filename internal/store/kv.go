// internal/store/kv.go
//
// Key/value persistence facility for long-lived records (AI memory, scores,
// selected mode, first-visit marker). Values are opaque strings; callers own
// the serialization (JSON) and recover from corrupt values themselves.

package store

import (
	"context"
	"sync"
)

// KV is a minimal get/set-by-name store.
type KV interface {
	// Get returns the value stored under key. ok is false when the key is unset.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
}

type memoryKV struct {
	mu   sync.RWMutex
	vals map[string]string
}

// NewMemoryKV returns a process-local KV, handy for tests and throwaway runs.
func NewMemoryKV() KV {
	return &memoryKV{vals: make(map[string]string)}
}

func (m *memoryKV) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.vals[key]
	return v, ok, nil
}

func (m *memoryKV) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vals[key] = value
	return nil
}
