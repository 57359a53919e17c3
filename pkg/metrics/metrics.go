package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"
)

// Metric names
const (
	WeatherSearchesTotal      = "weather_searches_total"
	WeatherRequestsTotal      = "weather_requests_total"
	WeatherAPIDurationSeconds = "weather_api_duration_seconds"
	LastCityWritesTotal       = "last_city_writes_total"
	UIState                   = "ui_state"
	HTTPRequestsTotal         = "http_requests_total"
	HTTPRequestDuration       = "http_request_duration_seconds"
)

type Metrics struct {
	registry   *prometheus.Registry
	counters   map[string]*prometheus.CounterVec
	histograms map[string]*prometheus.HistogramVec
	gauges     map[string]*prometheus.GaugeVec
}

// New creates metrics registered on a private registry with the Go and
// process collectors attached.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return NewWithRegistry(registry)
}

// NewWithRegistry creates metrics registered on registry
func NewWithRegistry(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		registry:   registry,
		counters:   make(map[string]*prometheus.CounterVec),
		histograms: make(map[string]*prometheus.HistogramVec),
		gauges:     make(map[string]*prometheus.GaugeVec),
	}

	m.counters[WeatherSearchesTotal] = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: WeatherSearchesTotal,
			Help: "Total number of city searches by outcome",
		},
		[]string{"outcome"},
	)

	m.counters[WeatherRequestsTotal] = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: WeatherRequestsTotal,
			Help: "Total number of weather API requests",
		},
		[]string{"api", "status"},
	)

	m.counters[LastCityWritesTotal] = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: LastCityWritesTotal,
			Help: "Total number of last city writes by status",
		},
		[]string{"status"},
	)

	m.counters[HTTPRequestsTotal] = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: HTTPRequestsTotal,
			Help: "Total number of HTTP requests served",
		},
		[]string{"method", "route", "status"},
	)

	m.histograms[WeatherAPIDurationSeconds] = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    WeatherAPIDurationSeconds,
			Help:    "Duration of weather API requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"api"},
	)

	m.histograms[HTTPRequestDuration] = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    HTTPRequestDuration,
			Help:    "Duration of HTTP request handling",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	m.gauges[UIState] = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: UIState,
			Help: "Current lookup state (1 for the active state, 0 otherwise)",
		},
		[]string{"state"},
	)

	for _, counter := range m.counters {
		registry.MustRegister(counter)
	}
	for _, histogram := range m.histograms {
		registry.MustRegister(histogram)
	}
	for _, gauge := range m.gauges {
		registry.MustRegister(gauge)
	}

	return m
}

func (m *Metrics) IncrementCounter(name string, labelValues ...string) {
	if m == nil {
		return
	}
	if counter, exists := m.counters[name]; exists {
		counter.WithLabelValues(labelValues...).Inc()
	}
}

func (m *Metrics) ObserveHistogram(name string, value float64, labelValues ...string) {
	if m == nil {
		return
	}
	if histogram, exists := m.histograms[name]; exists {
		histogram.WithLabelValues(labelValues...).Observe(value)
	}
}

func (m *Metrics) SetGauge(name string, value float64, labelValues ...string) {
	if m == nil {
		return
	}
	if gauge, exists := m.gauges[name]; exists {
		gauge.WithLabelValues(labelValues...).Set(value)
	}
}

// SetState marks state as the active lookup state among states
func (m *Metrics) SetState(state string, states ...string) {
	for _, s := range states {
		value := 0.0
		if s == state {
			value = 1.0
		}
		m.SetGauge(UIState, value, s)
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// CounterValue reads the current value of a counter series, 0 if unknown
func (m *Metrics) CounterValue(name string, labelValues ...string) float64 {
	counter, exists := m.counters[name]
	if !exists {
		return 0
	}
	c, err := counter.GetMetricWithLabelValues(labelValues...)
	if err != nil {
		return 0
	}
	metric := &dto.Metric{}
	if err := c.Write(metric); err != nil || metric.Counter == nil {
		return 0
	}
	return metric.Counter.GetValue()
}

// GaugeValue reads the current value of a gauge series, 0 if unknown
func (m *Metrics) GaugeValue(name string, labelValues ...string) float64 {
	gauge, exists := m.gauges[name]
	if !exists {
		return 0
	}
	g, err := gauge.GetMetricWithLabelValues(labelValues...)
	if err != nil {
		return 0
	}
	metric := &dto.Metric{}
	if err := g.Write(metric); err != nil || metric.Gauge == nil {
		return 0
	}
	return metric.Gauge.GetValue()
}

// GetAverageResponseTime calculates the average weather API response time
// from the duration histogram. Returns milliseconds, 0 without samples.
func (m *Metrics) GetAverageResponseTime() float64 {
	histogram, exists := m.histograms[WeatherAPIDurationSeconds]
	if !exists {
		return 0
	}

	metricChan := make(chan prometheus.Metric, 10)
	go func() {
		histogram.Collect(metricChan)
		close(metricChan)
	}()

	var totalSum float64
	var totalCount uint64

	for metric := range metricChan {
		dtoMetric := &dto.Metric{}
		if err := metric.Write(dtoMetric); err != nil {
			continue
		}
		if dtoMetric.Histogram != nil {
			totalSum += dtoMetric.Histogram.GetSampleSum()
			totalCount += dtoMetric.Histogram.GetSampleCount()
		}
	}

	if totalCount == 0 {
		return 0
	}
	return totalSum / float64(totalCount) * 1000.0
}
