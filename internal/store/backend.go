// Package store provides durable key/value persistence for learner state.
// Values are JSON blobs under namespaced keys; a missing key is never an
// error, it simply means "use defaults".
package store

import (
	"sync"
)

// Storage keys. The legacy key is read once for migration and never
// written again.
const (
	KeyProfiles      = "profiles.v1"
	KeyActiveProfile = "profiles.active"
	KeyLegacyProfile = "profile.legacy"
	KeyBookmarks     = "bookmarks.v1"
	KeyDailyVerse    = "verse.daily"
	KeyVerseHistory  = "verse.history"
)

// Backend is a minimal key/value storage backend. Get returns nil for a
// missing key rather than an error.
type Backend interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
	Close() error
}

// MemoryBackend is an in-process Backend used by tests and ephemeral
// sessions.
type MemoryBackend struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[string][]byte)}
}

// Get returns the stored value, or nil if the key is absent.
func (m *MemoryBackend) Get(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

// Set stores a copy of value under key.
func (m *MemoryBackend) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	m.data[key] = v
	return nil
}

// Delete removes key. Deleting an absent key is a no-op.
func (m *MemoryBackend) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Close is a no-op for the in-memory backend.
func (m *MemoryBackend) Close() error {
	return nil
}
