package handler

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate keeps repository config files and the developer's home out of
// config.Load
func isolate(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	originalDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(originalDir) })
	t.Setenv("HOME", dir)
}

func TestInitialize_RequiresAPIKey(t *testing.T) {
	isolate(t)
	t.Setenv("OPENWEATHER_API_KEY", "")

	_, err := initialize()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENWEATHER_API_KEY is required")
}

func TestHandler(t *testing.T) {
	isolate(t)
	t.Setenv("OPENWEATHER_API_KEY", "test-key")
	t.Setenv("WEATHER_BASE_URL", "http://127.0.0.1:1")
	t.Setenv("LOAD_LAST_CITY_ON_START", "false")

	t.Cleanup(func() {
		if instance != nil {
			_ = instance.Stop()
		}
	})

	w := httptest.NewRecorder()
	Handler(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	Handler(w, httptest.NewRequest(http.MethodGet, "/api/v1/weather/state", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"state":"idle"}`, w.Body.String())
}
