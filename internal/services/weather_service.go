package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/valpere/pohoda/internal/interfaces"
	"github.com/valpere/pohoda/internal/models"
	"github.com/valpere/pohoda/internal/observable"
	"github.com/valpere/pohoda/pkg/metrics"
	"github.com/valpere/pohoda/pkg/weather"
)

var (
	// ErrEmptyQuery is returned by SearchCity for blank input. No state is
	// published for it; the caller reports it.
	ErrEmptyQuery = errors.New("city name must not be empty")

	// ErrStopped is returned by SearchCity once the service has been stopped
	ErrStopped = errors.New("weather service stopped")
)

const (
	unknownErrorMessage = "Unknown error"
	persistTimeout      = 5 * time.Second
	providerAPI         = "openweather"
)

// Search outcomes recorded in weather_searches_total
const (
	outcomeSuccess    = "success"
	outcomeError      = "error"
	outcomeSuperseded = "superseded"
)

var stateNames = []string{
	models.StateIdle.String(),
	models.StateLoading.String(),
	models.StateSuccess.String(),
	models.StateError.String(),
}

// WeatherService owns the lookup state. Every search publishes Loading and
// then exactly one of Success or Error, unless a newer search superseded it.
// Only the most recently started search may publish a result or write the
// last city.
type WeatherService struct {
	provider interfaces.WeatherProvider
	store    interfaces.CityStore
	metrics  *metrics.Metrics
	logger   *zerolog.Logger

	state *observable.Value[models.UiState]

	// mu guards generation, cancel and every state publication
	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc

	ctx  context.Context
	stop context.CancelFunc
	wg   sync.WaitGroup

	persistMu        sync.Mutex
	lastPersistedGen uint64
}

func NewWeatherService(provider interfaces.WeatherProvider, store interfaces.CityStore, metrics *metrics.Metrics, logger *zerolog.Logger) *WeatherService {
	ctx, stop := context.WithCancel(context.Background())

	s := &WeatherService{
		provider: provider,
		store:    store,
		metrics:  metrics,
		logger:   logger,
		state:    observable.New(models.IdleState()),
		ctx:      ctx,
		stop:     stop,
	}
	s.metrics.SetState(models.StateIdle.String(), stateNames...)

	return s
}

// SearchCity starts a lookup for query and returns without waiting for it.
// Blank input returns ErrEmptyQuery and leaves the state untouched. A search
// still in flight is canceled and its result, if any, is discarded.
func (s *WeatherService) SearchCity(query string) error {
	city := strings.TrimSpace(query)
	if city == "" {
		return ErrEmptyQuery
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctx.Err() != nil {
		return ErrStopped
	}

	s.startSearchLocked(city)
	return nil
}

// LoadLastCity replays the stored city as a search, if there is one. It
// returns immediately; a search started after this call takes precedence
// over the replay.
func (s *WeatherService) LoadLastCity() {
	s.mu.Lock()
	if s.ctx.Err() != nil {
		s.mu.Unlock()
		return
	}
	requestedAt := s.generation
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()

		lastCity, err := s.firstLastCity()
		if err != nil {
			s.logger.Debug().Err(err).Msg("Last city not read")
			return
		}
		if !lastCity.Usable() {
			s.logger.Debug().Msg("No last city to load")
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		if s.ctx.Err() != nil {
			return
		}
		if s.generation != requestedAt {
			s.logger.Debug().
				Str("city", lastCity.City).
				Msg("Skipping last city, a newer search already started")
			return
		}

		s.startSearchLocked(strings.TrimSpace(lastCity.City))
	}()
}

// State returns the latest published state
func (s *WeatherService) State() models.UiState {
	return s.state.Load()
}

// Subscribe streams the current state followed by every transition, in
// order, until ctx ends
func (s *WeatherService) Subscribe(ctx context.Context) <-chan models.UiState {
	return s.state.Subscribe(ctx)
}

// LastCity streams the stored city, independent of the lookup state
func (s *WeatherService) LastCity(ctx context.Context) <-chan models.LastCity {
	return s.store.Watch(ctx)
}

// Stop cancels in-flight work, discards its results and waits for background
// goroutines to finish. A search still loading ends in an Error state.
func (s *WeatherService) Stop() {
	s.mu.Lock()
	s.generation++
	s.stop()
	if s.state.Load().Kind == models.StateLoading {
		s.publishLocked(models.ErrorState(ErrStopped.Error()))
	}
	s.mu.Unlock()

	s.wg.Wait()
}

// startSearchLocked must be called with s.mu held
func (s *WeatherService) startSearchLocked(city string) {
	if s.cancel != nil {
		s.cancel()
	}

	s.generation++
	gen := s.generation

	ctx, cancel := context.WithCancel(s.ctx)
	s.cancel = cancel

	logger := s.logger.With().
		Str("search_id", uuid.NewString()).
		Str("city", city).
		Logger()

	s.publishLocked(models.LoadingState())
	logger.Debug().Uint64("generation", gen).Msg("Search started")

	s.wg.Add(1)
	go s.fetch(ctx, gen, city, &logger)
}

func (s *WeatherService) fetch(ctx context.Context, gen uint64, city string, logger *zerolog.Logger) {
	defer s.wg.Done()

	start := time.Now()
	record, err := s.provider.GetWeatherByCity(ctx, city)
	duration := time.Since(start)

	s.metrics.ObserveHistogram(metrics.WeatherAPIDurationSeconds, duration.Seconds(), providerAPI)
	s.metrics.IncrementCounter(metrics.WeatherRequestsTotal, providerAPI, requestStatus(err))

	if err == nil && record == nil {
		err = &weather.ProviderError{Kind: weather.KindMalformed, Message: "empty response"}
	}

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		s.metrics.IncrementCounter(metrics.WeatherSearchesTotal, outcomeSuperseded)
		logger.Debug().Msg("Discarding superseded search result")
		return
	}

	if err != nil {
		s.publishLocked(models.ErrorState(errorMessage(err)))
		s.mu.Unlock()

		s.metrics.IncrementCounter(metrics.WeatherSearchesTotal, outcomeError)
		logger.Warn().
			Err(err).
			Str("kind", weather.KindOf(err).String()).
			Dur("duration", duration).
			Msg("Weather lookup failed")
		return
	}

	s.publishLocked(models.SuccessState(*record))
	s.mu.Unlock()

	s.metrics.IncrementCounter(metrics.WeatherSearchesTotal, outcomeSuccess)
	logger.Info().
		Str("location", record.DisplayName()).
		Dur("duration", duration).
		Msg("Weather lookup succeeded")

	s.persist(gen, city, logger)
}

// persist writes city unless a newer search already wrote its own
func (s *WeatherService) persist(gen uint64, city string, logger *zerolog.Logger) {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	if gen < s.lastPersistedGen {
		logger.Debug().Msg("Skipping last city write, a newer city is stored")
		return
	}

	// The write outlives the search context so a newer search cannot
	// interrupt it halfway
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if err := s.store.Save(ctx, city); err != nil {
		s.metrics.IncrementCounter(metrics.LastCityWritesTotal, "error")
		logger.Error().Err(err).Msg("Failed to persist last city")
		return
	}

	s.lastPersistedGen = gen
	s.metrics.IncrementCounter(metrics.LastCityWritesTotal, "success")
}

// publishLocked must be called with s.mu held
func (s *WeatherService) publishLocked(state models.UiState) {
	s.state.Store(state)
	s.metrics.SetState(state.Kind.String(), stateNames...)
}

func (s *WeatherService) firstLastCity() (models.LastCity, error) {
	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()

	select {
	case city, ok := <-s.store.Watch(ctx):
		if !ok {
			return models.NoLastCity(), errors.New("last city stream closed")
		}
		return city, nil
	case <-ctx.Done():
		return models.NoLastCity(), ctx.Err()
	}
}

// errorMessage is the human-readable text shown for a failed lookup
func errorMessage(err error) string {
	message := strings.TrimSpace(err.Error())
	if message == "" {
		return unknownErrorMessage
	}
	return message
}

func requestStatus(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return weather.KindOf(err).String()
	}
}
