package status

import "sync"

// Family is a set of metrics of one kind, listed in the order they were first registered
// The engine registers its metrics at wiring time, so that order is the status bar order
type Family[T any] struct {
	mu    sync.RWMutex
	index map[string]*T
	order []string
}

func NewFamily[T any]() *Family[T] {
	return &Family[T]{index: make(map[string]*T)}
}

// Metric returns the metric for key, registering it on first use
// Callers keep the pointer and update it without going through the family again
func (f *Family[T]) Metric(key string) *T {
	if m, ok := f.Lookup(key); ok {
		return m
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if m, ok := f.index[key]; ok {
		return m
	}
	m := new(T)
	f.index[key] = m
	f.order = append(f.order, key)
	return m
}

// Lookup returns a registered metric without registering it
func (f *Family[T]) Lookup(key string) (*T, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	m, ok := f.index[key]
	return m, ok
}

// Each visits metrics in registration order
func (f *Family[T]) Each(fn func(key string, m *T)) {
	f.mu.RLock()
	keys := append([]string(nil), f.order...)
	metrics := make([]*T, len(keys))
	for i, k := range keys {
		metrics[i] = f.index[k]
	}
	f.mu.RUnlock()

	for i, k := range keys {
		fn(k, metrics[i])
	}
}

func (f *Family[T]) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.order)
}
