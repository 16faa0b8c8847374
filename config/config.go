// Package config loads the application configuration from environment
// variables. A .env file in the working directory is read first when present,
// so local development does not need exported variables.
package config

import (
	"crypto/sha256"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // SITE_TIMEZONE resolves on hosts without zoneinfo

	"github.com/joho/godotenv"
)

// Config holds every configuration section of the server.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Email    EmailConfig
	Storage  StorageConfig
	Redis    RedisConfig
	CORS     CORSConfig
	Cookie   CookieConfig
}

// ServerConfig, HTTP server settings.
type ServerConfig struct {
	Host      string
	Port      int
	PublicURL string // absolute site URL used in sign-up redirect links (e.g. https://tutorzindia.org)
	// Location is the zone dates are shown and exported in (SITE_TIMEZONE).
	Location *time.Location
	// TrustedProxies are the proxy addresses or CIDRs whose X-Forwarded-For
	// and X-Real-IP headers are believed. Empty means none.
	TrustedProxies []string
}

// DatabaseConfig, SQLite settings.
type DatabaseConfig struct {
	Path string // e.g. ./data/tutorz.db
}

// JWTConfig, access/refresh token settings.
type JWTConfig struct {
	Secret             string
	AccessTokenExpiry  int // minutes
	RefreshTokenExpiry int // days
}

// EmailConfig, Resend settings. Email is optional; an empty API key disables it.
type EmailConfig struct {
	ResendAPIKey string
	FromEmail    string
	NotifyEmail  string // inbox that receives contact form messages
}

// Enabled reports whether enough settings are present to send mail.
func (c *EmailConfig) Enabled() bool {
	return c.ResendAPIKey != "" && c.FromEmail != ""
}

// StorageConfig, S3 bucket used for gallery uploads. Optional.
type StorageConfig struct {
	Bucket          string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	MaxUploadSize   int64 // bytes
}

// Enabled reports whether gallery uploads can be stored.
func (c *StorageConfig) Enabled() bool {
	return c.Bucket != "" && c.Region != "" && c.AccessKeyID != "" && c.SecretAccessKey != ""
}

// RedisConfig, optional pub/sub relay for session events between instances.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Channel  string
}

// Enabled reports whether the relay should be started.
func (c *RedisConfig) Enabled() bool {
	return c.Addr != ""
}

// CORSConfig, allowed origins for the JSON API.
type CORSConfig struct {
	AllowedOrigins []string
}

// CookieConfig, admin session cookie settings.
type CookieConfig struct {
	Secure bool
	// CSRFKey is the 32-byte key of the admin form tokens. It is derived from
	// CSRF_KEY, or from JWT_SECRET when CSRF_KEY is unset, so every instance
	// agrees on it.
	CSRFKey []byte
}

// Load builds a Config from the environment.
func Load() (*Config, error) {
	// Missing .env is fine; production uses real environment variables.
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("SERVER_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	accessExpiry, err := strconv.Atoi(getEnv("JWT_ACCESS_EXPIRY_MINUTES", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_EXPIRY_MINUTES: %w", err)
	}

	refreshExpiry, err := strconv.Atoi(getEnv("JWT_REFRESH_EXPIRY_DAYS", "7"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_REFRESH_EXPIRY_DAYS: %w", err)
	}

	maxUpload, err := strconv.ParseInt(getEnv("UPLOAD_MAX_SIZE", "5242880"), 10, 64) // 5MB
	if err != nil {
		return nil, fmt.Errorf("invalid UPLOAD_MAX_SIZE: %w", err)
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	secureCookie, err := strconv.ParseBool(getEnv("COOKIE_SECURE", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid COOKIE_SECURE: %w", err)
	}

	jwtSecret := getEnv("JWT_SECRET", "")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	location, err := time.LoadLocation(getEnv("SITE_TIMEZONE", "Asia/Kolkata"))
	if err != nil {
		return nil, fmt.Errorf("invalid SITE_TIMEZONE: %w", err)
	}

	csrfKey := sha256.Sum256([]byte("csrf:" + getEnv("CSRF_KEY", jwtSecret)))

	cfg := &Config{
		Server: ServerConfig{
			Host:      getEnv("SERVER_HOST", "0.0.0.0"),
			Port:      port,
			PublicURL: strings.TrimRight(getEnv("PUBLIC_URL", fmt.Sprintf("http://localhost:%d", port)), "/"),
			Location:       location,
			TrustedProxies: splitList(getEnv("TRUSTED_PROXIES", "")),
		},
		Database: DatabaseConfig{
			Path: getEnv("DATABASE_PATH", "./data/tutorz.db"),
		},
		JWT: JWTConfig{
			Secret:             jwtSecret,
			AccessTokenExpiry:  accessExpiry,
			RefreshTokenExpiry: refreshExpiry,
		},
		Email: EmailConfig{
			ResendAPIKey: getEnv("RESEND_API_KEY", ""),
			FromEmail:    getEnv("RESEND_FROM", ""),
			NotifyEmail:  getEnv("CONTACT_NOTIFY_EMAIL", ""),
		},
		Storage: StorageConfig{
			Bucket:          getEnv("S3_BUCKET", ""),
			Region:          getEnv("S3_REGION", ""),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			MaxUploadSize:   maxUpload,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
			Channel:  getEnv("REDIS_CHANNEL", "tutorz:events"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		},
		Cookie: CookieConfig{
			Secure:  secureCookie,
			CSRFKey: csrfKey[:],
		},
	}

	return cfg, nil
}

// Addr returns the listen address (e.g. "0.0.0.0:8080").
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv reads an environment variable or returns fallback.
func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
