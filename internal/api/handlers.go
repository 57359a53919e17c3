// Package api exposes the weather orchestrator over HTTP: JSON commands,
// state snapshots and Server-Sent Event streams.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/valpere/pohoda/internal/interfaces"
	"github.com/valpere/pohoda/internal/middleware"
	"github.com/valpere/pohoda/internal/models"
	"github.com/valpere/pohoda/internal/services"
	"github.com/valpere/pohoda/internal/version"
)

const (
	eventState    = "state"
	eventLastCity = "last_city"

	lastCityReadTimeout = 5 * time.Second
)

type searchRequest struct {
	City string `json:"city"`
}

type locationRequest struct {
	Lat *float64 `json:"lat" binding:"required"`
	Lon *float64 `json:"lon" binding:"required"`
}

type locationResponse struct {
	City  string         `json:"city"`
	State models.UiState `json:"state"`
}

type healthResponse struct {
	Status  string       `json:"status"`
	Uptime  string       `json:"uptime"`
	Version version.Info `json:"version"`
}

// Handler serves the weather endpoints
type Handler struct {
	weather   interfaces.WeatherOrchestrator
	location  interfaces.LocationSearcher
	logger    *zerolog.Logger
	startTime time.Time
}

func NewHandler(weather interfaces.WeatherOrchestrator, location interfaces.LocationSearcher, logger *zerolog.Logger) *Handler {
	return &Handler{
		weather:   weather,
		location:  location,
		logger:    logger,
		startTime: time.Now(),
	}
}

// Health handles GET /health
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{
		Status:  "ok",
		Uptime:  time.Since(h.startTime).Round(time.Second).String(),
		Version: version.GetInfo(),
	})
}

// State handles GET /api/v1/weather/state
func (h *Handler) State(c *gin.Context) {
	c.JSON(http.StatusOK, h.weather.State())
}

// StreamState handles GET /api/v1/weather/state/stream. The current state is
// sent first, then every transition until the client disconnects.
func (h *Handler) StreamState(c *gin.Context) {
	ctx := c.Request.Context()
	streamEvents(c, eventState, h.weather.Subscribe(ctx))
}

// Search handles POST /api/v1/weather/search
func (h *Handler) Search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.weather.SearchCity(req.City); err != nil {
		h.respondSearchError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, h.weather.State())
}

// SearchByLocation handles POST /api/v1/weather/search/location
func (h *Handler) SearchByLocation(c *gin.Context) {
	var req locationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lon are required"})
		return
	}

	city, err := h.location.SearchByLocation(c.Request.Context(), *req.Lat, *req.Lon)
	if err != nil {
		h.respondSearchError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, locationResponse{City: city, State: h.weather.State()})
}

// LoadLastCity handles POST /api/v1/weather/last-city/load
func (h *Handler) LoadLastCity(c *gin.Context) {
	h.weather.LoadLastCity()
	c.JSON(http.StatusAccepted, h.weather.State())
}

// LastCity handles GET /api/v1/weather/last-city
func (h *Handler) LastCity(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), lastCityReadTimeout)
	defer cancel()

	select {
	case city, ok := <-h.weather.LastCity(ctx):
		if !ok {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "last city unavailable"})
			return
		}
		c.JSON(http.StatusOK, city)
	case <-ctx.Done():
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "last city unavailable"})
	}
}

// StreamLastCity handles GET /api/v1/weather/last-city/stream
func (h *Handler) StreamLastCity(c *gin.Context) {
	ctx := c.Request.Context()
	streamEvents(c, eventLastCity, h.weather.LastCity(ctx))
}

func (h *Handler) respondSearchError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEmptyQuery):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrLocationUnresolved):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrStopped):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		h.logger.Error().
			Err(err).
			Str("request_id", middleware.GetRequestID(c)).
			Msg("Search request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// streamEvents writes each value from events as an SSE event named name
// until the channel closes or the client goes away. Server read and write
// timeouts do not apply to a stream.
func streamEvents[T any](c *gin.Context, name string, events <-chan T) {
	rc := http.NewResponseController(c.Writer)
	// Test recorders do not support deadlines
	_ = rc.SetReadDeadline(time.Time{})
	_ = rc.SetWriteDeadline(time.Time{})

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	done := c.Request.Context().Done()
	for {
		select {
		case <-done:
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			c.SSEvent(name, event)
			c.Writer.Flush()
		}
	}
}
