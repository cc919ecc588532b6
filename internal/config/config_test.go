package config_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supervape/catalog/internal/config"
)

func TestNew(t *testing.T) {
	t.Run("Should parse full configuration from environment", func(t *testing.T) {
		t.Setenv("POSTGRES_HOST", "localhost")
		t.Setenv("POSTGRES_PORT", "5432")
		t.Setenv("POSTGRES_USER", "catalog")
		t.Setenv("POSTGRES_PASSWORD", "secret")
		t.Setenv("POSTGRES_DB", "catalog")
		t.Setenv("HTTP_PORT", "9000")
		t.Setenv("API_KEY", "sekret")
		t.Setenv("LOG_FORMAT", "text")
		t.Setenv("LOG_LEVEL", "DEBUG")

		type Config struct {
			Log      config.Log
			Postgres config.Postgres
			HTTP     config.HTTP
			Auth     config.Auth
		}
		cfg, err := config.New[Config]()
		require.NoError(t, err)

		assert.Equal(t, "localhost", cfg.Postgres.Host)
		assert.Equal(t, 5432, cfg.Postgres.Port)
		assert.Equal(t, "disable", cfg.Postgres.SSLMode)
		assert.Equal(t, uint32(9000), cfg.HTTP.Port)
		assert.Equal(t, "sekret", cfg.Auth.APIKey)
		assert.Equal(t, config.LogFormatText, cfg.Log.Format)
		assert.Equal(t, slog.LevelDebug, cfg.Log.Level)
	})

	t.Run("Should leave the auth gate disabled by default", func(t *testing.T) {
		cfg, err := config.New[config.Auth]()
		require.NoError(t, err)

		assert.Empty(t, cfg.APIKey)
	})

	t.Run("Should fail on missing required variables", func(t *testing.T) {
		_, err := config.New[config.Postgres]()
		assert.Error(t, err)
	})

	t.Run("Should reject an unknown log format", func(t *testing.T) {
		t.Setenv("LOG_FORMAT", "XML")

		_, err := config.New[config.Log]()
		assert.Error(t, err)
	})
}
