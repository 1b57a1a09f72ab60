package core

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Supported database drivers
const (
	DriverSQLite = "sqlite"
	DriverMongo  = "mongo"
)

// Config represents the main configuration for newsdesk
type Config struct {
	Server   ServerConfig   `json:"server"`
	Database DatabaseConfig `json:"database"`
	Auth     AuthConfig     `json:"auth"`
	Features FeatureConfig  `json:"features"`
	LogLevel string         `json:"log_level"`
}

// ServerConfig contains server-related configuration
type ServerConfig struct {
	Port            int           `json:"port"`
	Host            string        `json:"host"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig selects and configures the article/user store
type DatabaseConfig struct {
	Driver        string `json:"driver"`
	Path          string `json:"path"`
	MongoURI      string `json:"-"`
	MongoDatabase string `json:"mongo_database"`
}

// AuthConfig contains authentication-related configuration
type AuthConfig struct {
	JWTSecret     string        `json:"-"`
	TokenTTL      time.Duration `json:"token_ttl"`
	CookieMaxAge  time.Duration `json:"cookie_max_age"`
	CookieSecure  bool          `json:"cookie_secure"`
	ProtectAPI    bool          `json:"protect_api"`
	AdminEmail    string        `json:"admin_email"`
	AdminPassword string        `json:"-"`
	AdminName     string        `json:"admin_name"`
}

// FeatureConfig contains feature-specific configuration
type FeatureConfig struct {
	Articles ArticlesConfig `json:"articles"`
	Uploads  UploadsConfig  `json:"uploads"`
}

// ArticlesConfig controls listing defaults and content handling
type ArticlesConfig struct {
	DefaultLimit int  `json:"default_limit"`
	MaxLimit     int  `json:"max_limit"`
	SanitizeHTML bool `json:"sanitize_html"`
}

// UploadsConfig contains the object storage settings
type UploadsConfig struct {
	Enabled         bool   `json:"enabled"`
	AccountID       string `json:"account_id"`
	AccessKeyID     string `json:"-"`
	SecretAccessKey string `json:"-"`
	Bucket          string `json:"bucket"`
	PublicURL       string `json:"public_url"`
	Endpoint        string `json:"endpoint"`
	MaxBytes        int64  `json:"max_bytes"`
}

// LoadConfig loads configuration from environment variables and validates it
func LoadConfig() (*Config, error) {
	config := ConfigFromEnv()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// ConfigFromEnv reads the environment over the defaults without validating
func ConfigFromEnv() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            getEnvAsInt("NEWSDESK_PORT", 4000),
			Host:            getEnvOrDefault("NEWSDESK_HOST", "0.0.0.0"),
			ShutdownTimeout: getEnvAsDuration("NEWSDESK_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Driver:        strings.ToLower(getEnvOrDefault("DATABASE_DRIVER", DriverSQLite)),
			Path:          getEnvOrDefault("DATABASE_PATH", "./newsdesk.db"),
			MongoURI:      getEnvOrDefault("MONGO_URI", ""),
			MongoDatabase: getEnvOrDefault("MONGO_DATABASE", "newsdesk"),
		},
		Auth: AuthConfig{
			JWTSecret:     getEnvOrDefault("JWT_SECRET", ""),
			TokenTTL:      getEnvAsDuration("AUTH_TOKEN_TTL", time.Hour),
			CookieMaxAge:  getEnvAsDuration("AUTH_COOKIE_MAX_AGE", 24*time.Hour),
			CookieSecure:  getEnvAsBool("AUTH_COOKIE_SECURE", true),
			ProtectAPI:    getEnvAsBool("AUTH_PROTECT_API", false),
			AdminEmail:    getEnvOrDefault("ADMIN_EMAIL", ""),
			AdminPassword: getEnvOrDefault("ADMIN_PASSWORD", ""),
			AdminName:     getEnvOrDefault("ADMIN_NAME", "Administrator"),
		},
		Features: FeatureConfig{
			Articles: ArticlesConfig{
				DefaultLimit: getEnvAsInt("ARTICLES_DEFAULT_LIMIT", 10),
				MaxLimit:     getEnvAsInt("ARTICLES_MAX_LIMIT", 0),
				SanitizeHTML: getEnvAsBool("ARTICLES_SANITIZE_HTML", false),
			},
			Uploads: UploadsConfig{
				Enabled:         getEnvAsBool("UPLOADS_ENABLED", true),
				AccountID:       getEnvOrDefault("R2_ACCOUNT_ID", ""),
				AccessKeyID:     getEnvOrDefault("R2_ACCESS_KEY_ID", ""),
				SecretAccessKey: getEnvOrDefault("R2_SECRET_ACCESS_KEY", ""),
				Bucket:          getEnvOrDefault("R2_BUCKET_NAME", ""),
				PublicURL:       getEnvOrDefault("R2_PUBLIC_URL", ""),
				Endpoint:        getEnvOrDefault("R2_ENDPOINT", ""),
				MaxBytes:        int64(getEnvAsInt("UPLOAD_MAX_BYTES", 10<<20)),
			},
		},
		LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("database path is required")
		}
	case DriverMongo:
		if c.Database.MongoURI == "" {
			return fmt.Errorf("MONGO_URI is required when DATABASE_DRIVER is mongo")
		}
		if c.Database.MongoDatabase == "" {
			return fmt.Errorf("mongo database name is required")
		}
	default:
		return fmt.Errorf("unsupported database driver: %q", c.Database.Driver)
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("token ttl must be positive")
	}
	if c.Auth.AdminEmail != "" && c.Auth.AdminPassword == "" {
		return fmt.Errorf("admin password is required when admin email is set")
	}

	if c.Features.Articles.DefaultLimit < 1 {
		return fmt.Errorf("invalid default article limit: %d", c.Features.Articles.DefaultLimit)
	}
	if maxLimit := c.Features.Articles.MaxLimit; maxLimit < 0 {
		return fmt.Errorf("invalid max article limit: %d", maxLimit)
	} else if maxLimit > 0 && maxLimit < c.Features.Articles.DefaultLimit {
		return fmt.Errorf("max article limit %d is below the default %d",
			maxLimit, c.Features.Articles.DefaultLimit)
	}

	if c.Features.Uploads.Enabled {
		u := c.Features.Uploads
		if u.AccountID == "" && u.Endpoint == "" {
			return fmt.Errorf("R2_ACCOUNT_ID or R2_ENDPOINT is required when uploads are enabled")
		}
		if u.AccessKeyID == "" || u.SecretAccessKey == "" {
			return fmt.Errorf("R2 credentials are required when uploads are enabled")
		}
		if u.Bucket == "" {
			return fmt.Errorf("R2_BUCKET_NAME is required when uploads are enabled")
		}
		if u.PublicURL == "" {
			return fmt.Errorf("R2_PUBLIC_URL is required when uploads are enabled")
		}
		if u.MaxBytes <= 0 {
			return fmt.Errorf("invalid upload size limit: %d", u.MaxBytes)
		}
	}

	return nil
}

// IsFeatureEnabled checks if a feature is enabled
func (c *Config) IsFeatureEnabled(featureName string) bool {
	switch strings.ToLower(featureName) {
	case "articles", "admin":
		return true
	case "uploads":
		return c.Features.Uploads.Enabled
	default:
		return false
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		switch strings.ToLower(value) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
