package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("UPLOADS_ENABLED", "false")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 4000, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:4000", cfg.Server.Addr())
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 24*time.Hour, cfg.Auth.CookieMaxAge)
	assert.True(t, cfg.Auth.CookieSecure)
	assert.False(t, cfg.Auth.ProtectAPI)
	assert.Equal(t, 10, cfg.Features.Articles.DefaultLimit)
	assert.Equal(t, 0, cfg.Features.Articles.MaxLimit)
	assert.False(t, cfg.Features.Articles.SanitizeHTML)
	assert.Equal(t, int64(10<<20), cfg.Features.Uploads.MaxBytes)
	assert.False(t, cfg.IsFeatureEnabled("uploads"))
	assert.True(t, cfg.IsFeatureEnabled("articles"))
}

func TestLoadConfigRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("UPLOADS_ENABLED", "false")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestLoadConfigOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("NEWSDESK_PORT", "8080")
	t.Setenv("AUTH_TOKEN_TTL", "30m")
	t.Setenv("AUTH_COOKIE_SECURE", "off")
	t.Setenv("ARTICLES_DEFAULT_LIMIT", "25")
	t.Setenv("NEWSDESK_SHUTDOWN_TIMEOUT", "not-a-duration")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL)
	assert.False(t, cfg.Auth.CookieSecure)
	assert.Equal(t, 25, cfg.Features.Articles.DefaultLimit)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: 4000},
			Database: DatabaseConfig{Driver: DriverSQLite, Path: ":memory:"},
			Auth:     AuthConfig{JWTSecret: "s", TokenTTL: time.Hour},
			Features: FeatureConfig{
				Articles: ArticlesConfig{DefaultLimit: 10, MaxLimit: 100},
				Uploads: UploadsConfig{
					Enabled:         true,
					AccountID:       "acct",
					AccessKeyID:     "ak",
					SecretAccessKey: "sk",
					Bucket:          "media",
					PublicURL:       "https://cdn.example.com",
					MaxBytes:        1024,
				},
			},
		}
	}

	require.NoError(t, valid().Validate())

	uncapped := valid()
	uncapped.Features.Articles.MaxLimit = 0
	require.NoError(t, uncapped.Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "invalid server port"},
		{"unknown driver", func(c *Config) { c.Database.Driver = "postgres" }, "unsupported database driver"},
		{"mongo without uri", func(c *Config) { c.Database.Driver = DriverMongo; c.Database.MongoDatabase = "n" }, "MONGO_URI"},
		{"admin without password", func(c *Config) { c.Auth.AdminEmail = "a@example.com" }, "admin password"},
		{"max below default", func(c *Config) { c.Features.Articles.MaxLimit = 5 }, "max article limit"},
		{"negative max", func(c *Config) { c.Features.Articles.MaxLimit = -1 }, "invalid max article limit"},
		{"upload without bucket", func(c *Config) { c.Features.Uploads.Bucket = "" }, "R2_BUCKET_NAME"},
		{"upload without public url", func(c *Config) { c.Features.Uploads.PublicURL = "" }, "R2_PUBLIC_URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			assert.ErrorContains(t, c.Validate(), tt.want)
		})
	}
}

func TestConfigFromEnvSkipsValidation(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("NEWSDESK_PORT", "0")

	cfg := ConfigFromEnv()
	assert.Equal(t, 0, cfg.Server.Port)
	assert.Error(t, cfg.Validate())
}
