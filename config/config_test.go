package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/careloop/backend/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("testdata/nonexistent.env")
	assert.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ServerAddr)
	assert.Equal(t, 3600, cfg.JWTTTLSeconds)
	assert.Equal(t, time.Hour, cfg.GetTokenTTL())
	assert.Equal(t, "Bearer", cfg.GetAuthScheme())
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":9999")
	t.Setenv("JWT_TTL_SECONDS", "120")
	t.Setenv("JWT_SECRET", "c2VjcmV0LWtleS1tYXRlcmlhbA==")

	cfg, err := config.Load("testdata/nonexistent.env")
	assert.NoError(t, err)

	assert.Equal(t, ":9999", cfg.ServerAddr)
	assert.Equal(t, 2*time.Minute, cfg.GetTokenTTL())
	assert.Equal(t, "c2VjcmV0LWtleS1tYXRlcmlhbA==", cfg.GetSigningKey())
}

func TestValidate(t *testing.T) {
	t.Run("production requires a signing secret", func(t *testing.T) {
		cfg := &config.Config{
			AppEnv:        config.EnvProduction,
			JWTTTLSeconds: 3600,
		}
		assert.Error(t, cfg.Validate())

		cfg.JWTSecret = "c2VjcmV0"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("dev runs without a secret", func(t *testing.T) {
		cfg := &config.Config{
			AppEnv:        config.EnvDev,
			JWTTTLSeconds: 3600,
		}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("ttl must be positive", func(t *testing.T) {
		cfg := &config.Config{JWTTTLSeconds: 0}
		assert.Error(t, cfg.Validate())

		cfg.JWTTTLSeconds = -5
		assert.Error(t, cfg.Validate())
	})
}
