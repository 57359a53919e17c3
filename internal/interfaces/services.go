package interfaces

import (
	"context"

	"github.com/valpere/pohoda/internal/models"
)

//go:generate mockgen -source=services.go -destination=../mocks/services_mock.go -package=mocks

// WeatherOrchestrator is the lookup state machine exposed to presentation layers
type WeatherOrchestrator interface {
	SearchCity(query string) error
	LoadLastCity()
	State() models.UiState
	Subscribe(ctx context.Context) <-chan models.UiState
	LastCity(ctx context.Context) <-chan models.LastCity
}

// LocationSearcher starts a search for the city at the given coordinates
type LocationSearcher interface {
	SearchByLocation(ctx context.Context, lat, lon float64) (string, error)
}
