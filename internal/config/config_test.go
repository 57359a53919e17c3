package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// inTempDir runs the test body from an empty directory so no config file or
// .env from the repository is picked up
func inTempDir(t *testing.T) string {
	t.Helper()
	originalDir, _ := os.Getwd()
	tmpDir := t.TempDir()
	require.NoError(t, os.Chdir(tmpDir))
	t.Cleanup(func() { _ = os.Chdir(originalDir) })
	return tmpDir
}

func TestLoad(t *testing.T) {
	// Reset viper state before each test
	resetViper := func() {
		viper.Reset()
	}

	t.Run("loads with defaults when no config file exists", func(t *testing.T) {
		resetViper()
		inTempDir(t)

		cfg, err := Load()
		require.NoError(t, err)
		require.NotNil(t, cfg)

		// Verify defaults are applied
		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
		assert.Equal(t, 5.0, cfg.Server.RateLimit)
		assert.Equal(t, 10, cfg.Server.RateBurst)
		assert.Equal(t, "https://api.openweathermap.org", cfg.Weather.BaseURL)
		assert.Equal(t, 10*time.Second, cfg.Weather.Timeout)
		assert.True(t, cfg.Weather.LoadLastCityOnStart)
		assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
		assert.Equal(t, "last_city", cfg.Storage.Key)
		assert.Equal(t, "pohoda.db", cfg.Storage.SQLitePath)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, "localhost", cfg.Redis.Host)
		assert.Equal(t, 6379, cfg.Redis.Port)
		assert.Equal(t, 0, cfg.Redis.DB)
		assert.Equal(t, "pohoda:last_city", cfg.Redis.Key)
		assert.Equal(t, "info", cfg.Logging.Level)
		assert.Equal(t, "json", cfg.Logging.Format)
		assert.True(t, cfg.Metrics.Enabled)
	})

	t.Run("loads from environment variables", func(t *testing.T) {
		resetViper()

		os.Setenv("OPENWEATHER_API_KEY", "weather_key_123")
		os.Setenv("WEATHER_TIMEOUT", "5s")
		os.Setenv("STORAGE_DRIVER", "redis")
		os.Setenv("REDIS_HOST", "redis.example.com")
		os.Setenv("REDIS_PORT", "6380")
		os.Setenv("SERVER_PORT", "9090")
		os.Setenv("LOG_LEVEL", "debug")
		os.Setenv("LOAD_LAST_CITY_ON_START", "false")
		defer func() {
			os.Unsetenv("OPENWEATHER_API_KEY")
			os.Unsetenv("WEATHER_TIMEOUT")
			os.Unsetenv("STORAGE_DRIVER")
			os.Unsetenv("REDIS_HOST")
			os.Unsetenv("REDIS_PORT")
			os.Unsetenv("SERVER_PORT")
			os.Unsetenv("LOG_LEVEL")
			os.Unsetenv("LOAD_LAST_CITY_ON_START")
		}()

		inTempDir(t)

		cfg, err := Load()
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, "weather_key_123", cfg.Weather.OpenWeatherAPIKey)
		assert.Equal(t, 5*time.Second, cfg.Weather.Timeout)
		assert.False(t, cfg.Weather.LoadLastCityOnStart)
		assert.Equal(t, DriverRedis, cfg.Storage.Driver)
		assert.Equal(t, "redis.example.com", cfg.Redis.Host)
		assert.Equal(t, 6380, cfg.Redis.Port)
		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, "debug", cfg.Logging.Level)
	})

	t.Run("loads from YAML config file", func(t *testing.T) {
		resetViper()
		dir := inTempDir(t)

		content := []byte(`
server:
  port: 8181
weather:
  openweather_api_key: yaml_key
  load_last_city_on_start: false
storage:
  driver: postgres
  key: home_city
database:
  host: db.internal
  name: pohoda
logging:
  format: console
`)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "pohoda.yaml"), content, 0o600))

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 8181, cfg.Server.Port)
		assert.Equal(t, "yaml_key", cfg.Weather.OpenWeatherAPIKey)
		assert.False(t, cfg.Weather.LoadLastCityOnStart)
		assert.Equal(t, DriverPostgres, cfg.Storage.Driver)
		assert.Equal(t, "home_city", cfg.Storage.Key)
		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.Equal(t, "pohoda", cfg.Database.Name)
		assert.Equal(t, "console", cfg.Logging.Format)
	})

	t.Run("loads .env file", func(t *testing.T) {
		resetViper()
		dir := inTempDir(t)

		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("OPENWEATHER_API_KEY=dotenv_key\n"), 0o600))
		defer os.Unsetenv("OPENWEATHER_API_KEY")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "dotenv_key", cfg.Weather.OpenWeatherAPIKey)
	})

	t.Run("rejects unknown storage driver", func(t *testing.T) {
		resetViper()
		os.Setenv("STORAGE_DRIVER", "floppy")
		defer os.Unsetenv("STORAGE_DRIVER")
		inTempDir(t)

		cfg, err := Load()
		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), `unsupported storage driver "floppy"`)
	})

	t.Run("rejects malformed config file", func(t *testing.T) {
		resetViper()
		dir := inTempDir(t)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "pohoda.yaml"), []byte("server: [unclosed"), 0o600))

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error reading config file")
	})
}

func TestSetDefaults(t *testing.T) {
	viper.Reset()

	setDefaults()

	t.Run("server defaults", func(t *testing.T) {
		assert.Equal(t, 8080, viper.GetInt("server.port"))
		assert.Equal(t, 30*time.Second, viper.GetDuration("server.write_timeout"))
	})

	t.Run("weather defaults", func(t *testing.T) {
		assert.Equal(t, "Pohoda/1.0 (+https://github.com/valpere/pohoda)", viper.GetString("weather.user_agent"))
		assert.Empty(t, viper.GetString("weather.openweather_api_key"))
	})

	t.Run("storage defaults", func(t *testing.T) {
		assert.Equal(t, "sqlite", viper.GetString("storage.driver"))
		assert.Equal(t, "last_city", viper.GetString("storage.key"))
	})

	t.Run("logging defaults", func(t *testing.T) {
		assert.Equal(t, "info", viper.GetString("logging.level"))
		assert.Equal(t, "json", viper.GetString("logging.format"))
	})
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server:  ServerConfig{Port: 8080},
			Storage: StorageConfig{Driver: DriverSQLite, SQLitePath: "pohoda.db"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "memory driver", mutate: func(c *Config) { c.Storage.Driver = DriverMemory }},
		{name: "unknown driver", mutate: func(c *Config) { c.Storage.Driver = "etcd" }, wantErr: "unsupported storage driver"},
		{name: "sqlite without path", mutate: func(c *Config) { c.Storage.SQLitePath = "" }, wantErr: "sqlite_path is required"},
		{name: "port out of range", mutate: func(c *Config) { c.Server.Port = 70000 }, wantErr: "invalid server port"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
