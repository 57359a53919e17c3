package interfaces

import (
	"context"

	"github.com/valpere/pohoda/internal/models"
)

//go:generate mockgen -source=weather_client.go -destination=../mocks/weather_client_mock.go -package=mocks

// WeatherProvider fetches current conditions for a city name
type WeatherProvider interface {
	GetWeatherByCity(ctx context.Context, city string) (*models.WeatherRecord, error)
}

// CityResolver turns device coordinates into a city name
type CityResolver interface {
	ResolveCity(ctx context.Context, lat, lon float64) (string, error)
}
