package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/valpere/pohoda/internal/middleware"
	"github.com/valpere/pohoda/pkg/metrics"
)

// RouterOptions carries the cross-cutting pieces of the HTTP stack. Metrics
// and RateLimiter are optional.
type RouterOptions struct {
	Logger      zerolog.Logger
	Metrics     *metrics.Metrics
	RateLimiter *middleware.ClientRateLimiter
}

// NewRouter mounts h on a gin engine with recovery, request IDs, access logs,
// metrics and rate limiting
func NewRouter(h *Handler, opts RouterOptions) *gin.Engine {
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logging(opts.Logger),
	)
	if opts.Metrics != nil {
		r.Use(middleware.Metrics(opts.Metrics))
	}

	r.GET("/health", h.Health)
	if opts.Metrics != nil {
		r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	v1 := r.Group("/api/v1/weather")
	if opts.RateLimiter != nil {
		v1.Use(middleware.RateLimit(opts.RateLimiter))
	}

	v1.GET("/state", h.State)
	v1.GET("/state/stream", h.StreamState)
	v1.POST("/search", h.Search)
	v1.POST("/search/location", h.SearchByLocation)
	v1.GET("/last-city", h.LastCity)
	v1.GET("/last-city/stream", h.StreamLastCity)
	v1.POST("/last-city/load", h.LoadLastCity)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	return r
}
