// Package cache provides a small thread-safe in-memory TTL cache for
// rendered byte payloads such as the sitemap.
package cache

import (
	"sync"
	"time"
)

type entry struct {
	value     []byte
	expiresAt time.Time
}

// Memory is a thread-safe in-memory cache with per-entry expiry.
type Memory struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]entry
}

// New creates a memory cache whose entries expire after ttl.
func New(ttl time.Duration) *Memory {
	return &Memory{
		ttl:     ttl,
		entries: make(map[string]entry),
	}
}

// Get returns the cached value for key, or false when absent or expired.
// The returned slice is a copy.
func (m *Memory) Get(key string) ([]byte, bool) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		m.Delete(key)
		return nil, false
	}

	out := make([]byte, len(e.value))
	copy(out, e.value)
	return out, true
}

// Set stores a copy of value under key.
func (m *Memory) Set(key string, value []byte) {
	val := make([]byte, len(value))
	copy(val, value)

	m.mu.Lock()
	m.entries[key] = entry{value: val, expiresAt: time.Now().Add(m.ttl)}
	m.mu.Unlock()
}

// Delete removes key from the cache.
func (m *Memory) Delete(key string) {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
}
