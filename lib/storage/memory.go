package storage

import (
	"fmt"
	"sync"
)

// DefaultQuota is the byte budget of a Memory area, matching the 5 MiB
// commonly granted to a web storage area.
const DefaultQuota = 5 << 20

// Memory is an in-process Store bounded by a byte quota. Usage is counted
// as key length plus value length, the way browsers account web storage.
type Memory struct {
	mu    sync.RWMutex
	limit int
	used  int
	data  map[string][]byte
}

// NewMemory creates a memory area with the default quota.
func NewMemory() *Memory {
	return NewMemoryLimit(DefaultQuota)
}

// NewMemoryLimit creates a memory area bounded by limit bytes.
func NewMemoryLimit(limit int) *Memory {
	return &Memory{
		limit: limit,
		data:  make(map[string][]byte),
	}
}

// Get returns a copy of the blob stored under key.
func (m *Memory) Get(key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

// Set stores a copy of value under key. Writes that would push usage past
// the quota fail with ErrQuotaExceeded and leave the area unchanged.
func (m *Memory) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := m.used + len(key) + len(value)
	if prev, ok := m.data[key]; ok {
		next -= len(key) + len(prev)
	}
	if next > m.limit {
		return fmt.Errorf("storage: set %q: %w", key, ErrQuotaExceeded)
	}

	stored := make([]byte, len(value))
	copy(stored, value)
	m.data[key] = stored
	m.used = next
	return nil
}

// Delete removes key and releases its budget.
func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if prev, ok := m.data[key]; ok {
		m.used -= len(key) + len(prev)
		delete(m.data, key)
	}
	return nil
}

// Len returns the number of stored keys.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
