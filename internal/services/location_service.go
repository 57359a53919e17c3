package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog"

	"github.com/valpere/pohoda/internal/interfaces"
)

// ErrLocationUnresolved is returned when coordinates map to no city name
var ErrLocationUnresolved = errors.New("could not resolve a city for the location")

// LocationService turns a device position into a city search
type LocationService struct {
	resolver interfaces.CityResolver
	weather  interfaces.WeatherOrchestrator
	logger   *zerolog.Logger
}

func NewLocationService(resolver interfaces.CityResolver, weather interfaces.WeatherOrchestrator, logger *zerolog.Logger) *LocationService {
	return &LocationService{
		resolver: resolver,
		weather:  weather,
		logger:   logger,
	}
}

// SearchByLocation resolves lat/lon to a city and starts a search for it.
// Resolution failures are returned to the caller and publish no state.
func (s *LocationService) SearchByLocation(ctx context.Context, lat, lon float64) (string, error) {
	if math.IsNaN(lat) || math.IsNaN(lon) || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return "", fmt.Errorf("invalid coordinates %.4f,%.4f: %w", lat, lon, ErrLocationUnresolved)
	}

	city, err := s.resolver.ResolveCity(ctx, lat, lon)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to resolve city for location")
		return "", fmt.Errorf("%w: %w", ErrLocationUnresolved, err)
	}

	city = strings.TrimSpace(city)
	if city == "" {
		return "", ErrLocationUnresolved
	}

	if err := s.weather.SearchCity(city); err != nil {
		return "", err
	}

	s.logger.Debug().Str("city", city).Msg("Search started from location")
	return city, nil
}
