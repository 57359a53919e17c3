// Package storage keeps the last successfully searched city in a durable
// single slot and streams every change of it to watchers.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/valpere/pohoda/internal/models"
	"github.com/valpere/pohoda/internal/observable"
)

// ErrPersistence wraps every failed write of the last city
var ErrPersistence = errors.New("failed to persist last city")

// Backend is the durable slot behind a CityStore
type Backend interface {
	// Load returns the stored city and whether one was present
	Load(ctx context.Context) (string, bool, error)
	Save(ctx context.Context, city string) error
	Close() error
}

// CityStore adds a live projection on top of a Backend. Writes go to the
// backend first and are published only once durable.
type CityStore struct {
	backend Backend
	value   *observable.Value[models.LastCity]
	logger  *zerolog.Logger
}

// NewCityStore reads the initial value from backend. A failed read is logged
// and treated as no stored city.
func NewCityStore(ctx context.Context, backend Backend, logger *zerolog.Logger) *CityStore {
	initial := models.NoLastCity()

	city, ok, err := backend.Load(ctx)
	switch {
	case err != nil:
		logger.Warn().Err(err).Msg("Failed to load last city, starting without one")
	case ok:
		initial = models.KnownLastCity(city)
	}

	return &CityStore{
		backend: backend,
		value:   observable.New(initial),
		logger:  logger,
	}
}

// Watch streams the current value followed by every later write until ctx ends
func (s *CityStore) Watch(ctx context.Context) <-chan models.LastCity {
	return s.value.Subscribe(ctx)
}

// Current returns the latest known value
func (s *CityStore) Current() models.LastCity {
	return s.value.Load()
}

// First returns the first value of the stream, as a one-shot read
func (s *CityStore) First(ctx context.Context) (models.LastCity, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	select {
	case city, ok := <-s.Watch(ctx):
		if !ok {
			return models.NoLastCity(), ctx.Err()
		}
		return city, nil
	case <-ctx.Done():
		return models.NoLastCity(), ctx.Err()
	}
}

// Save durably replaces the stored city and publishes it to watchers
func (s *CityStore) Save(ctx context.Context, city string) error {
	if err := s.backend.Save(ctx, city); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	s.value.Store(models.KnownLastCity(city))
	s.logger.Debug().Str("city", city).Msg("Last city saved")
	return nil
}

func (s *CityStore) Close() error {
	return s.backend.Close()
}
