package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_ACCESS_TOKEN_EXPIRY_MINUTES", "30")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8088", cfg.App.Port)
	assert.Equal(t, 30, cfg.JWT.AccessTokenExpiryMinutes)
	assert.Equal(t, "scorebook.live", cfg.AMQP.Exchange)
	assert.False(t, cfg.IsProduction())
	assert.Same(t, cfg, GetConfig())
}

func TestLoadConfig_ProductionNeedsSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_ACCESS_TOKEN_SECRET", defaultJWTSecret)

	_, err := LoadConfig()
	assert.Error(t, err)

	t.Setenv("JWT_ACCESS_TOKEN_SECRET", "real-secret")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}

func TestLoadConfig_BadExpiry(t *testing.T) {
	t.Setenv("JWT_ACCESS_TOKEN_EXPIRY_MINUTES", "0")
	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestPostgresDSN(t *testing.T) {
	var cfg Config
	cfg.DB.Host = "db"
	cfg.DB.User = "u"
	cfg.DB.Password = "p"
	cfg.DB.Name = "scores"
	cfg.DB.Port = "5432"
	cfg.DB.SSLMode = "disable"
	assert.Equal(t, "host=db user=u password=p dbname=scores port=5432 sslmode=disable TimeZone=UTC", cfg.PostgresDSN())

	cfg.DB.URL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", cfg.PostgresDSN())
}
