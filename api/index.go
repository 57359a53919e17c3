// Package handler is the serverless entry point. Each cold start builds the
// application once and then serves the same router as cmd/pohoda.
package handler

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/valpere/pohoda/internal/app"
	"github.com/valpere/pohoda/internal/config"
)

var (
	instance *app.App
	initOnce sync.Once
	initErr  error
)

// Handler is the serverless function entry point
func Handler(w http.ResponseWriter, r *http.Request) {
	// Initialize on first request (cold start)
	initOnce.Do(func() {
		instance, initErr = initialize()
	})

	if initErr != nil {
		log.Error().Err(initErr).Msg("Initialization failed")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	instance.Handler().ServeHTTP(w, r)
}

func initialize() (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if cfg.Weather.OpenWeatherAPIKey == "" {
		return nil, fmt.Errorf("OPENWEATHER_API_KEY is required")
	}

	// The function filesystem does not survive between invocations
	if cfg.Storage.Driver == config.DriverSQLite {
		log.Warn().Msg("SQLite storage is not persistent here, using memory storage")
		cfg.Storage.Driver = config.DriverMemory
	}

	a, err := app.New(cfg)
	if err != nil {
		return nil, err
	}

	if cfg.Weather.LoadLastCityOnStart {
		a.Services().Weather.LoadLastCity()
	}

	return a, nil
}
