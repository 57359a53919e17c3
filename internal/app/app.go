// Package app wires configuration, storage, the weather provider, services
// and the HTTP server into a runnable process.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/valpere/pohoda/internal/api"
	"github.com/valpere/pohoda/internal/config"
	"github.com/valpere/pohoda/internal/middleware"
	"github.com/valpere/pohoda/internal/models"
	"github.com/valpere/pohoda/internal/services"
	"github.com/valpere/pohoda/internal/storage"
	"github.com/valpere/pohoda/internal/version"
	"github.com/valpere/pohoda/pkg/metrics"
	"github.com/valpere/pohoda/pkg/weather"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	config   *config.Config
	logger   zerolog.Logger
	metrics  *metrics.Metrics
	store    *storage.CityStore
	services *services.Services
	limiter  *middleware.ClientRateLimiter
	server   *http.Server
}

// New builds the application from cfg. Logs go to stderr so one-shot output
// on stdout stays machine readable.
func New(cfg *config.Config) (*App, error) {
	return newApp(cfg, os.Stderr)
}

func newApp(cfg *config.Config, logOutput io.Writer) (*App, error) {
	logger := NewLogger(cfg.Logging, logOutput)

	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New()
	}

	store, err := storage.Open(context.Background(), cfg, &logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open last city storage: %w", err)
	}

	opts := weatherOptions(&cfg.Weather)
	provider := weather.NewClient(cfg.Weather.OpenWeatherAPIKey, opts...)
	resolver := weather.NewGeocodingClient(cfg.Weather.OpenWeatherAPIKey, opts...)

	if cfg.Weather.OpenWeatherAPIKey == "" {
		logger.Warn().Msg("OPENWEATHER_API_KEY is not set, every lookup will fail")
	}

	svcs := services.New(provider, resolver, store, &logger, metricsCollector)

	a := &App{
		config:   cfg,
		logger:   logger,
		metrics:  metricsCollector,
		store:    store,
		services: svcs,
		limiter:  middleware.NewClientRateLimiter(rate.Limit(cfg.Server.RateLimit), cfg.Server.RateBurst),
	}
	a.setupHTTPServer()

	return a, nil
}

// NewLogger builds the process logger from cfg. Unknown levels fall back to
// info.
func NewLogger(cfg config.LoggingConfig, out io.Writer) zerolog.Logger {
	if strings.EqualFold(cfg.Format, "console") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("component", "pohoda").
		Logger()
}

func weatherOptions(cfg *config.WeatherConfig) []weather.Option {
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = version.GetInfo().UserAgent()
	}

	return []weather.Option{
		weather.WithBaseURL(cfg.BaseURL),
		weather.WithTimeout(cfg.Timeout),
		weather.WithUserAgent(userAgent),
	}
}

func (a *App) setupHTTPServer() {
	gin.SetMode(gin.ReleaseMode)

	handler := api.NewHandler(a.services.Weather, a.services.Location, &a.logger)
	router := api.NewRouter(handler, api.RouterOptions{
		Logger:      a.logger.With().Str("component", "http").Logger(),
		Metrics:     a.metrics,
		RateLimiter: a.limiter,
	})

	a.server = &http.Server{
		Addr:         ":" + strconv.Itoa(a.config.Server.Port),
		Handler:      router,
		ReadTimeout:  a.config.Server.ReadTimeout,
		WriteTimeout: a.config.Server.WriteTimeout,
	}
}

// Services exposes the service container, mainly for one-shot commands
func (a *App) Services() *services.Services {
	return a.services
}

// Handler returns the HTTP handler without starting a listener
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Start serves HTTP until ctx is canceled. If configured, the stored city is
// replayed once the listener is up.
func (a *App) Start(ctx context.Context) error {
	a.logger.Info().
		Str("version", version.GetInfo().Short()).
		Str("storage", a.config.Storage.Driver).
		Msg("Starting Pohoda...")

	listener, err := net.Listen("tcp", a.server.Addr)
	if err != nil {
		return fmt.Errorf("HTTP server failed: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	a.logger.Info().
		Int("port", a.config.Server.Port).
		Msg("HTTP server started")

	if a.config.Weather.LoadLastCityOnStart {
		a.services.Weather.LoadLastCity()
	}

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		return fmt.Errorf("HTTP server failed: %w", err)
	}
}

// Lookup runs a single search for city and waits for its terminal state
func (a *App) Lookup(ctx context.Context, city string) (models.UiState, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Subscribe first so the search's transitions cannot be missed
	states := a.services.Weather.Subscribe(ctx)
	<-states

	if err := a.services.Weather.SearchCity(city); err != nil {
		return models.UiState{}, err
	}

	for {
		select {
		case state, ok := <-states:
			if !ok {
				return models.UiState{}, ctx.Err()
			}
			if state.IsTerminal() {
				return state, nil
			}
		case <-ctx.Done():
			return a.services.Weather.State(), ctx.Err()
		}
	}
}

func (a *App) Stop() error {
	a.logger.Info().Msg("Stopping Pohoda...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	if err := a.server.Shutdown(ctx); err != nil {
		a.logger.Error().Err(err).Msg("HTTP server shutdown error")
		errs = append(errs, err)
	}

	a.limiter.Stop()

	// Waits for in-flight persists before the backend goes away
	a.services.Stop()

	if err := a.store.Close(); err != nil {
		a.logger.Error().Err(err).Msg("Storage close error")
		errs = append(errs, err)
	}

	a.logger.Info().Msg("Pohoda stopped")
	return errors.Join(errs...)
}
