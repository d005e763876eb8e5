package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresSigningSecret(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "")
	t.Setenv("STORE_DRIVER", StoreDriverMemory)

	cfg, err := Load()
	require.ErrorIs(t, err, ErrMissingSigningSecret)
	assert.Nil(t, cfg)
}

func TestLoadRejectsBlankSigningSecret(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "   ")
	t.Setenv("STORE_DRIVER", StoreDriverMemory)

	_, err := Load()
	require.ErrorIs(t, err, ErrMissingSigningSecret)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "s3cret")
	t.Setenv("STORE_DRIVER", "MEMORY")
	t.Setenv("APP_PORT", "")
	t.Setenv("HTTP_REQUEST_TIMEOUT_SECONDS", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StoreDriverMemory, cfg.Store.Driver)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, "backoffice", cfg.Redis.KeyPrefix)
}

func TestLoadPostgresNeedsDSN(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "s3cret")
	t.Setenv("STORE_DRIVER", StoreDriverPostgres)
	t.Setenv("POSTGRES_DSN", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "POSTGRES_DSN")
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "s3cret")
	t.Setenv("STORE_DRIVER", "mongo")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mongo")
}

func TestLoadInvalidRedisDB(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "s3cret")
	t.Setenv("STORE_DRIVER", StoreDriverRedis)
	t.Setenv("REDIS_DB", "one")

	_, err := Load()
	require.Error(t, err)
}

func TestValidateBootstrapPair(t *testing.T) {
	cfg := &Config{
		Store: StoreConfig{Driver: StoreDriverMemory},
		Auth:  AuthConfig{JWTSecret: "x", BootstrapUsername: "admin"},
	}
	require.Error(t, cfg.Validate())

	cfg.Auth.BootstrapPassword = "changeme123"
	require.NoError(t, cfg.Validate())
}

func TestRequestTimeoutDisabled(t *testing.T) {
	assert.Equal(t, time.Duration(0), AppConfig{RequestTimeoutSeconds: 0}.RequestTimeout())
	assert.Equal(t, time.Duration(0), AppConfig{RequestTimeoutSeconds: -5}.RequestTimeout())
}
