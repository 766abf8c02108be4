// Package config loads application settings from the environment, with an
// optional .env file for local development.
package config

import (
	"strings"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvProduction = "production"
	EnvDev        = "dev"
)

// Config is the full application configuration.
type Config struct {
	AppEnv             string `mapstructure:"app_env"`
	ServerAddr         string `mapstructure:"server_addr"`
	JWTSecret          string `mapstructure:"jwt_secret"`
	JWTTTLSeconds      int    `mapstructure:"jwt_ttl_seconds"`
	AuthScheme         string `mapstructure:"auth_scheme"`
	DBDSN              string `mapstructure:"db_dsn"`
	CORSAllowedOrigins string `mapstructure:"cors_allowed_origins"`
	LogLevel           string `mapstructure:"log_level"`
}

// Load reads .env (when present) and the process environment.
func Load(envFiles ...string) (*Config, error) {
	// Missing .env is fine, env vars may come from the real environment.
	_ = godotenv.Load(envFiles...)

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("app_env", EnvDev)
	v.SetDefault("server_addr", ":8080")
	v.SetDefault("jwt_secret", "")
	v.SetDefault("jwt_ttl_seconds", 3600)
	v.SetDefault("auth_scheme", "Bearer")
	v.SetDefault("db_dsn", "file:careloop.db?cache=shared&_pragma=foreign_keys(1)")
	v.SetDefault("cors_allowed_origins", "http://localhost:3000")
	v.SetDefault("log_level", "debug")

	for _, key := range []string{
		"app_env", "server_addr", "jwt_secret", "jwt_ttl_seconds",
		"auth_scheme", "db_dsn", "cors_allowed_origins", "log_level",
	} {
		_ = v.BindEnv(key, strings.ToUpper(key))
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, errors.CategoryOperation, "failed to unmarshal configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects configurations the service must not start with.
func (c *Config) Validate() error {
	if c.JWTTTLSeconds <= 0 {
		return errors.New("JWT_TTL_SECONDS must be a positive number of seconds", errors.CategoryValidation)
	}

	if c.IsProduction() && strings.TrimSpace(c.JWTSecret) == "" {
		return errors.New(
			"JWT_SECRET is required in production: ephemeral signing keys would invalidate every session on restart",
			errors.CategoryValidation,
		)
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.AppEnv), EnvProduction)
}

// GetSigningKey returns the base64 encoded signing key material.
func (c *Config) GetSigningKey() string { return c.JWTSecret }

func (c *Config) GetTokenTTL() time.Duration {
	return time.Duration(c.JWTTTLSeconds) * time.Second
}

func (c *Config) GetAuthScheme() string { return c.AuthScheme }

// AllowedOrigins returns the comma separated CORS origin list.
func (c *Config) AllowedOrigins() string { return c.CORSAllowedOrigins }
