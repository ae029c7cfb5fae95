// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads the console configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"JVADMIN_DB_PATH" envDefault:"./data/jvadmin.db"`
	SessionSecret string `env:"JVADMIN_SESSION_SECRET,required"`
	ServerHost    string `env:"JVADMIN_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"JVADMIN_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"JVADMIN_ENV" envDefault:"development"`
	LogLevel      string `env:"JVADMIN_LOG_LEVEL" envDefault:"info"`

	// Content backend
	BackendURL       string        `env:"JVADMIN_BACKEND_URL" envDefault:"http://localhost:3000"`
	BackendTimeout   time.Duration `env:"JVADMIN_BACKEND_TIMEOUT" envDefault:"10s"`
	BackendRateLimit float64       `env:"JVADMIN_BACKEND_RATE_LIMIT" envDefault:"20"` // requests per second
	BackendBurst     int           `env:"JVADMIN_BACKEND_BURST" envDefault:"10"`

	// Console login. A single configured pair, not a user database.
	AdminEmail         string        `env:"JVADMIN_ADMIN_EMAIL" envDefault:"admin@jvhelp.org"`
	AdminPassword      string        `env:"JVADMIN_ADMIN_PASSWORD" envDefault:"admin123"`
	LoginRedirectDelay time.Duration `env:"JVADMIN_LOGIN_REDIRECT_DELAY" envDefault:"1s"`
	SessionLifetime    time.Duration `env:"JVADMIN_SESSION_LIFETIME" envDefault:"24h"`

	// Snapshot cache
	RedisURL     string `env:"JVADMIN_REDIS_URL"`                          // Optional Redis URL for shared snapshots
	CachePrefix  string `env:"JVADMIN_CACHE_PREFIX" envDefault:"jvadmin:"` // Redis key prefix
	CacheTTL     int    `env:"JVADMIN_CACHE_TTL" envDefault:"86400"`       // Snapshot TTL in seconds
	CacheMaxSize int    `env:"JVADMIN_CACHE_MAX_SIZE" envDefault:"1000"`   // Max memory cache entries

	// RefreshSchedule is a cron expression for snapshot refresh. Empty disables it.
	RefreshSchedule string `env:"JVADMIN_REFRESH_SCHEDULE" envDefault:"*/5 * * * *"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// CacheTTLDuration returns the snapshot TTL as a duration.
func (c Config) CacheTTLDuration() time.Duration {
	return time.Duration(c.CacheTTL) * time.Second
}

// SlogLevel maps LogLevel to a slog level. Unknown values map to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// ErrInvalidBackendURL is returned when JVADMIN_BACKEND_URL is not an absolute http(s) URL.
var ErrInvalidBackendURL = errors.New("JVADMIN_BACKEND_URL must be an absolute http or https URL")

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("JVADMIN_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("JVADMIN_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("JVADMIN_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	u, err := url.Parse(cfg.BackendURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, ErrInvalidBackendURL
	}

	if cfg.LoginRedirectDelay < 0 {
		cfg.LoginRedirectDelay = 0
	}

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
