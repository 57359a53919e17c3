package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	m := New()

	assert.NotNil(t, m)
	assert.NotNil(t, m.counters)
	assert.NotNil(t, m.histograms)
	assert.NotNil(t, m.gauges)

	assert.Contains(t, m.counters, WeatherSearchesTotal)
	assert.Contains(t, m.counters, WeatherRequestsTotal)
	assert.Contains(t, m.counters, LastCityWritesTotal)
	assert.Contains(t, m.counters, HTTPRequestsTotal)

	assert.Contains(t, m.histograms, WeatherAPIDurationSeconds)
	assert.Contains(t, m.histograms, HTTPRequestDuration)

	assert.Contains(t, m.gauges, UIState)
}

func TestNew_Twice(t *testing.T) {
	// Each instance owns its registry, so repeated construction is safe
	assert.NotPanics(t, func() {
		New()
		New()
	})
}

func TestMetrics_IncrementCounter(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry())

	t.Run("increment existing counter", func(t *testing.T) {
		m.IncrementCounter(WeatherSearchesTotal, "success")
		m.IncrementCounter(WeatherSearchesTotal, "success")
		assert.Equal(t, 2.0, m.CounterValue(WeatherSearchesTotal, "success"))
		assert.Equal(t, 0.0, m.CounterValue(WeatherSearchesTotal, "error"))
	})

	t.Run("increment non-existent counter does not panic", func(t *testing.T) {
		assert.NotPanics(t, func() {
			m.IncrementCounter("nonexistent_counter", "test")
		})
		assert.Equal(t, 0.0, m.CounterValue("nonexistent_counter", "test"))
	})
}

func TestMetrics_NilReceiver(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.IncrementCounter(WeatherSearchesTotal, "success")
		m.ObserveHistogram(WeatherAPIDurationSeconds, 0.1, "current")
		m.SetGauge(UIState, 1, "idle")
		m.SetState("idle", "idle", "loading")
	})
}

func TestMetrics_SetState(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry())
	states := []string{"idle", "loading", "success", "error"}

	m.SetState("loading", states...)
	assert.Equal(t, 1.0, m.GaugeValue(UIState, "loading"))
	assert.Equal(t, 0.0, m.GaugeValue(UIState, "idle"))

	m.SetState("success", states...)
	assert.Equal(t, 0.0, m.GaugeValue(UIState, "loading"))
	assert.Equal(t, 1.0, m.GaugeValue(UIState, "success"))
}

func TestMetrics_ObserveHistogram(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry())

	assert.Equal(t, 0.0, m.GetAverageResponseTime())

	m.ObserveHistogram(WeatherAPIDurationSeconds, 0.1, "current")
	m.ObserveHistogram(WeatherAPIDurationSeconds, 0.3, "current")

	assert.InDelta(t, 200.0, m.GetAverageResponseTime(), 0.001)

	assert.NotPanics(t, func() {
		m.ObserveHistogram("nonexistent_histogram", 1.0, "test")
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.IncrementCounter(WeatherRequestsTotal, "openweather", "success")

	server := httptest.NewServer(m.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `weather_requests_total{api="openweather",status="success"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
