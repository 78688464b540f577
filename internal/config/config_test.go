package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "")
	t.Setenv("SECRET_KEY", "")
	t.Setenv("APP_ENV", "development")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8000", cfg.App.Addr())
	assert.Equal(t, DefaultJWTSecret, cfg.Auth.JWTSecret)
	assert.True(t, cfg.Auth.UsingDefaultSecret)
	assert.Equal(t, 12*time.Hour, cfg.Auth.AccessTokenTTL())
	assert.Equal(t, PasswordSchemeBcrypt, cfg.Auth.PasswordScheme)
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
	assert.Equal(t, "*", cfg.CORS.AllowOrigins)
}

func TestLoad_SecretKeyFallback(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "")
	t.Setenv("SECRET_KEY", "from-secret-key")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-secret-key", cfg.Auth.JWTSecret)
	assert.False(t, cfg.Auth.UsingDefaultSecret)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "override")
	t.Setenv("AUTH_ACCESS_TOKEN_TTL_MINUTES", "30")
	t.Setenv("AUTH_PASSWORD_SCHEME", "ARGON2ID")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("POSTGRES_RUN_MIGRATIONS", "false")
	t.Setenv("AUTH_BCRYPT_COST", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, cfg.Auth.AccessTokenTTL())
	assert.Equal(t, PasswordSchemeArgon2id, cfg.Auth.PasswordScheme)
	assert.Equal(t, "9090", cfg.App.Port)
	assert.False(t, cfg.Postgres.RunMigrations)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
}

func TestLoad_InvalidRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "abc")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REDIS_DB")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			App: AppConfig{Env: "development"},
			Auth: AuthConfig{
				JWTSecret:             "secret",
				AccessTokenTTLMinutes: 60,
				PasswordScheme:        PasswordSchemeBcrypt,
				LoginMaxFailures:      5,
				LoginWindowMinutes:    15,
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{
			name:    "empty secret",
			mutate:  func(c *Config) { c.Auth.JWTSecret = "" },
			wantErr: "must not be empty",
		},
		{
			name: "default secret in production",
			mutate: func(c *Config) {
				c.App.Env = "production"
				c.Auth.JWTSecret = DefaultJWTSecret
				c.Auth.UsingDefaultSecret = true
			},
			wantErr: "must be set in production",
		},
		{
			name:    "non-positive ttl",
			mutate:  func(c *Config) { c.Auth.AccessTokenTTLMinutes = 0 },
			wantErr: "AUTH_ACCESS_TOKEN_TTL_MINUTES",
		},
		{
			name:    "unknown scheme",
			mutate:  func(c *Config) { c.Auth.PasswordScheme = "md5" },
			wantErr: "AUTH_PASSWORD_SCHEME",
		},
		{
			name:    "throttle without window",
			mutate:  func(c *Config) { c.Auth.LoginWindowMinutes = 0 },
			wantErr: "AUTH_LOGIN_WINDOW_MINUTES",
		},
		{
			name: "throttle disabled ignores window",
			mutate: func(c *Config) {
				c.Auth.LoginMaxFailures = 0
				c.Auth.LoginWindowMinutes = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
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
