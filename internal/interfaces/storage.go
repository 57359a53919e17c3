package interfaces

import (
	"context"

	"github.com/valpere/pohoda/internal/models"
)

//go:generate mockgen -source=storage.go -destination=../mocks/storage_mock.go -package=mocks

// CityStore is the durable single slot holding the last successful city.
// Watch emits the current value first and every later write after it.
type CityStore interface {
	Watch(ctx context.Context) <-chan models.LastCity
	Save(ctx context.Context, city string) error
}
