package config_test

import (
	"testing"
	"time"

	"go-leave/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")

		cfg, err := config.Load()

		assert.NoError(t, err)
		assert.Equal(t, "3000", cfg.Port)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
		assert.Equal(t, 3*time.Second, cfg.OutboxPollInterval)
		assert.False(t, cfg.IsProduction())
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("PORT", "8080")
		t.Setenv("JWT_TTL", "15m")
		t.Setenv("DB_MAX_RETRIES", "2")

		cfg, err := config.Load()

		assert.NoError(t, err)
		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, 15*time.Minute, cfg.JWTTTL)
		assert.Equal(t, 2, cfg.DBRetries)
	})

	t.Run("missing jwt secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")

		_, err := config.Load()

		assert.EqualError(t, err, "JWT_SECRET is required")
	})

	t.Run("short secret in production", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "short")
		t.Setenv("APP_ENV", "production")

		_, err := config.Load()

		assert.Error(t, err)
	})

	t.Run("invalid duration falls back", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("HTTP_READ_TIMEOUT", "soon")

		cfg, err := config.Load()

		assert.NoError(t, err)
		assert.Equal(t, 5*time.Second, cfg.ReadTimeout)
	})
}

func TestRequireKafka(t *testing.T) {
	cfg := &config.Config{}
	assert.Error(t, cfg.RequireKafka())

	cfg.KafkaBroker = "localhost:9092"
	assert.NoError(t, cfg.RequireKafka())
}
