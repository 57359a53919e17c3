// Package services provides the business logic layer for Pohoda.
// It owns the weather lookup state machine and the location-driven search
// that feeds it. Collaborators (weather provider, geocoder, city store) are
// injected through the interfaces package.
package services

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/valpere/pohoda/internal/interfaces"
	"github.com/valpere/pohoda/pkg/metrics"
)

// Services is the central container for all business logic services.
// It provides a single point of access to all service layer functionality.
//
// Architecture:
//   - Uses dependency injection for all services
//   - Services are initialized once during application startup
//   - Thread-safe and designed for concurrent use
//
// Usage:
//
//	svcs := services.New(provider, resolver, store, logger, metrics)
//	defer svcs.Stop()
//
//	err := svcs.Weather.SearchCity("London")
//	city, err := svcs.Location.SearchByLocation(ctx, 51.5, -0.12)
type Services struct {
	Weather   *WeatherService  // Lookup state machine and last city replay
	Location  *LocationService // Coordinates to city name, then search
	startTime time.Time        // Application start time for uptime calculation
}

// New creates a new Services container with all dependencies initialized.
//
// Parameters:
//   - provider: remote weather lookup (pkg/weather.Client)
//   - resolver: coordinates to city name (pkg/weather.GeocodingClient)
//   - store: durable last city slot (internal/storage.CityStore)
//   - logger: Structured logger (zerolog)
//   - metricsCollector: Prometheus metrics collector, may be nil
func New(
	provider interfaces.WeatherProvider,
	resolver interfaces.CityResolver,
	store interfaces.CityStore,
	logger *zerolog.Logger,
	metricsCollector *metrics.Metrics,
) *Services {
	weatherLogger := logger.With().Str("service", "weather").Logger()
	locationLogger := logger.With().Str("service", "location").Logger()

	weatherService := NewWeatherService(provider, store, metricsCollector, &weatherLogger)
	locationService := NewLocationService(resolver, weatherService, &locationLogger)

	return &Services{
		Weather:   weatherService,
		Location:  locationService,
		startTime: time.Now(),
	}
}

// Uptime reports how long the services have been running
func (s *Services) Uptime() time.Duration {
	return time.Since(s.startTime)
}

// Stop cancels in-flight lookups and waits for background work to finish.
// Should be called during application shutdown.
func (s *Services) Stop() {
	s.Weather.Stop()
}
