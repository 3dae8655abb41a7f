// Package config loads application configuration from environment variables.
// Modules depend on narrow interfaces so they only see the settings they need.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DatabaseConfig exposes database connection settings.
type DatabaseConfig interface {
	DatabaseURL() string
}

// JWTConfig exposes token signing settings.
type JWTConfig interface {
	JWTSecret() string
	AccessTokenTTL() time.Duration
	RefreshTokenTTL() time.Duration
}

// HTTPConfig exposes HTTP server settings.
type HTTPConfig interface {
	HTTPAddr() string
	Environment() string
	CORSOrigins() []string
}

// EmailConfig exposes SMTP settings for outbound mail.
type EmailConfig interface {
	SMTPHost() string
	SMTPPort() int
	SMTPUser() string
	SMTPPassword() string
	EmailFrom() string
	EmailEnabled() bool
}

// SchedulerConfig exposes settings for the background task queue.
type SchedulerConfig interface {
	RedisURL() string
	SchedulerQueue() string
}

// StorageConfig exposes object storage settings for import archives.
type StorageConfig interface {
	MinioEndpoint() string
	MinioAccessKey() string
	MinioSecretKey() string
	MinioBucket() string
	MinioUseSSL() bool
	StorageEnabled() bool
}

// Config holds all application configuration.
type Config struct {
	env         string
	httpAddr    string
	corsOrigins []string

	databaseURL string

	jwtSecret       string
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration

	smtpHost     string
	smtpPort     int
	smtpUser     string
	smtpPassword string
	emailFrom    string
	emailEnabled bool

	redisURL       string
	schedulerQueue string

	minioEndpoint  string
	minioAccessKey string
	minioSecretKey string
	minioBucket    string
	minioUseSSL    bool
	storageEnabled bool
}

// Load reads configuration from the environment. A .env file is loaded
// first if present; real environment variables take precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		env:         getEnv("APP_ENV", "development"),
		httpAddr:    getEnv("HTTP_ADDR", ":8080"),
		corsOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000")),

		databaseURL: os.Getenv("DATABASE_URL"),

		jwtSecret: os.Getenv("JWT_SECRET"),

		smtpHost:     getEnv("SMTP_HOST", ""),
		smtpUser:     getEnv("SMTP_USER", ""),
		smtpPassword: getEnv("SMTP_PASSWORD", ""),
		emailFrom:    getEnv("EMAIL_FROM", "noreply@leadflow.local"),

		redisURL:       getEnv("REDIS_URL", "redis://localhost:6379/0"),
		schedulerQueue: getEnv("SCHEDULER_QUEUE", "default"),

		minioEndpoint:  getEnv("MINIO_ENDPOINT", ""),
		minioAccessKey: getEnv("MINIO_ACCESS_KEY", ""),
		minioSecretKey: getEnv("MINIO_SECRET_KEY", ""),
		minioBucket:    getEnv("MINIO_BUCKET", "lead-imports"),
	}

	if cfg.databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if len(cfg.jwtSecret) < 32 {
		return nil, fmt.Errorf("JWT_SECRET must be at least 32 characters")
	}

	var err error
	cfg.accessTokenTTL, err = mustDuration("ACCESS_TOKEN_TTL", "15m")
	if err != nil {
		return nil, err
	}
	cfg.refreshTokenTTL, err = mustDuration("REFRESH_TOKEN_TTL", "720h")
	if err != nil {
		return nil, err
	}

	cfg.smtpPort, err = mustInt("SMTP_PORT", 587)
	if err != nil {
		return nil, err
	}
	cfg.emailEnabled = cfg.smtpHost != ""

	cfg.minioUseSSL, err = mustBool("MINIO_USE_SSL", false)
	if err != nil {
		return nil, err
	}
	cfg.storageEnabled = cfg.minioEndpoint != ""

	return cfg, nil
}

func (c *Config) Environment() string             { return c.env }
func (c *Config) HTTPAddr() string                { return c.httpAddr }
func (c *Config) CORSOrigins() []string           { return c.corsOrigins }
func (c *Config) DatabaseURL() string             { return c.databaseURL }
func (c *Config) JWTSecret() string               { return c.jwtSecret }
func (c *Config) AccessTokenTTL() time.Duration   { return c.accessTokenTTL }
func (c *Config) RefreshTokenTTL() time.Duration  { return c.refreshTokenTTL }
func (c *Config) SMTPHost() string                { return c.smtpHost }
func (c *Config) SMTPPort() int                   { return c.smtpPort }
func (c *Config) SMTPUser() string                { return c.smtpUser }
func (c *Config) SMTPPassword() string            { return c.smtpPassword }
func (c *Config) EmailFrom() string               { return c.emailFrom }
func (c *Config) EmailEnabled() bool              { return c.emailEnabled }
func (c *Config) RedisURL() string                { return c.redisURL }
func (c *Config) SchedulerQueue() string          { return c.schedulerQueue }
func (c *Config) MinioEndpoint() string           { return c.minioEndpoint }
func (c *Config) MinioAccessKey() string          { return c.minioAccessKey }
func (c *Config) MinioSecretKey() string          { return c.minioSecretKey }
func (c *Config) MinioBucket() string             { return c.minioBucket }
func (c *Config) MinioUseSSL() bool               { return c.minioUseSSL }
func (c *Config) StorageEnabled() bool            { return c.storageEnabled }

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func mustDuration(key, fallback string) (time.Duration, error) {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", key, raw, err)
	}
	return d, nil
}

func mustInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q: %w", key, raw, err)
	}
	return n, nil
}

func mustBool(key string, fallback bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s: invalid boolean %q: %w", key, raw, err)
	}
	return b, nil
}

func splitCSV(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
