package storage

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/valpere/pohoda/internal/config"
	"github.com/valpere/pohoda/internal/database"
	"github.com/valpere/pohoda/internal/models"
)

// Open connects the backend selected by cfg.Storage.Driver and wraps it in a
// CityStore seeded with the stored value.
func Open(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (*CityStore, error) {
	backend, err := OpenBackend(cfg)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("driver", cfg.Storage.Driver).
		Msg("Last city storage ready")

	return NewCityStore(ctx, backend, logger), nil
}

// OpenBackend connects the backend selected by cfg.Storage.Driver
func OpenBackend(cfg *config.Config) (Backend, error) {
	key := cfg.Storage.Key
	if key == "" {
		key = models.DefaultLastCityKey
	}

	switch cfg.Storage.Driver {
	case config.DriverMemory:
		return NewMemoryBackend(), nil

	case config.DriverSQLite:
		db, err := database.OpenSQLite(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, err
		}
		return NewSQLiteBackend(db, key), nil

	case config.DriverRedis:
		rdb, err := database.ConnectRedis(&cfg.Redis)
		if err != nil {
			return nil, err
		}
		redisKey := cfg.Redis.Key
		if redisKey == "" {
			redisKey = key
		}
		return NewRedisBackend(rdb, redisKey), nil

	case config.DriverPostgres:
		db, err := database.Connect(&cfg.Database)
		if err != nil {
			return nil, err
		}
		return NewGormBackend(db, key), nil

	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}
}
