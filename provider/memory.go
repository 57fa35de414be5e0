package provider

import (
	"context"
	"sync"
	"sync/atomic"
)

// InMemoryProvider serves values from a fixed in-memory map. It grounds
// tests/conftest.py's MockDataProvider from the original implementation:
// a minimal provider good enough to exercise the cache end to end without
// standing up real I/O.
type InMemoryProvider[V any] struct {
	mu        sync.RWMutex
	data      map[Key]V
	loadCalls atomic.Int64
}

// NewInMemoryProvider wraps the given data map. The map is copied so later
// mutation by the caller doesn't race with provider reads.
func NewInMemoryProvider[V any](data map[Key]V) *InMemoryProvider[V] {
	p := &InMemoryProvider[V]{data: make(map[Key]V, len(data))}
	for k, v := range data {
		p.data[k] = v
	}
	return p
}

// Load implements Provider[V].
func (p *InMemoryProvider[V]) Load(ctx context.Context, key Key) (V, error) {
	p.loadCalls.Add(1)
	p.mu.RLock()
	defer p.mu.RUnlock()
	v, ok := p.data[key]
	if !ok {
		var zero V
		return zero, ErrKeyNotFound
	}
	return v, nil
}

// AvailableKeys implements Provider[V].
func (p *InMemoryProvider[V]) AvailableKeys() []Key {
	p.mu.RLock()
	defer p.mu.RUnlock()
	keys := make([]Key, 0, len(p.data))
	for k := range p.data {
		keys = append(keys, k)
	}
	return keys
}

// TotalKeys implements Provider[V].
func (p *InMemoryProvider[V]) TotalKeys() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.data)
}

// Stats implements Provider[V].
func (p *InMemoryProvider[V]) Stats() map[string]any {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return map[string]any{
		"total_keys": len(p.data),
		"load_calls": p.loadCalls.Load(),
	}
}
