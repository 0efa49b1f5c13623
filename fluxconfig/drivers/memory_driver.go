package drivers

import "sync"

// MemoryDriver holds settings entirely in process memory: no file, no
// environment, nothing to watch. Useful for tests and for embedding flux
// into a process that already has its own configuration source and just
// wants to hand fluxconfig a plain map.
type MemoryDriver struct {
	mu     sync.RWMutex
	values map[string]interface{}
}

// NewMemoryDriver creates a memory driver seeded with initial values.
// initial may be nil, in which case the driver starts empty and Load leaves
// Settings at its defaults.
func NewMemoryDriver(initial map[string]interface{}) *MemoryDriver {
	values := make(map[string]interface{}, len(initial))
	for k, v := range initial {
		values[k] = v
	}
	return &MemoryDriver{values: values}
}

// Load is a no-op: values are already resident.
func (m *MemoryDriver) Load() error { return nil }

// GetAll returns a defensive copy of the held values.
func (m *MemoryDriver) GetAll() (map[string]interface{}, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]interface{}, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out, nil
}

// Set updates a single value, for callers that want to mutate the driver
// directly (tests, embedding code) rather than go through a file or env var.
func (m *MemoryDriver) Set(key string, value interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

// Watch is unsupported: there is no external source to watch for changes.
func (m *MemoryDriver) Watch(callback func()) error { return nil }

// Unwatch is a no-op for the memory driver.
func (m *MemoryDriver) Unwatch() error { return nil }
