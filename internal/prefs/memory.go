package prefs

import "sync"

// MemoryBackend keeps preferences in process memory only.
type MemoryBackend struct {
	mu     sync.Mutex
	values map[string]Value
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{values: make(map[string]Value)}
}

func (b *MemoryBackend) Load() (map[string]Value, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return cloneValues(b.values), nil
}

func (b *MemoryBackend) Update(fn UpdateFunc) (map[string]Value, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	applyChanges(b.values, fn(cloneValues(b.values)))
	return cloneValues(b.values), nil
}

func (b *MemoryBackend) Close() error {
	return nil
}
