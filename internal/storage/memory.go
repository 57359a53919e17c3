package storage

import (
	"context"
	"sync"
)

// MemoryBackend keeps the city in process memory only
type MemoryBackend struct {
	mu      sync.Mutex
	city    string
	present bool
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

// NewMemoryBackendWith starts with city already stored
func NewMemoryBackendWith(city string) *MemoryBackend {
	return &MemoryBackend{city: city, present: true}
}

func (b *MemoryBackend) Load(ctx context.Context) (string, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.city, b.present, nil
}

func (b *MemoryBackend) Save(ctx context.Context, city string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.city = city
	b.present = true
	return nil
}

func (b *MemoryBackend) Close() error {
	return nil
}
