// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"log/slog"
	"net/url"
	"time"
)

// Backend names reported by NewCache.
const (
	BackendMemory         = "memory"
	BackendRedis          = "redis"
	BackendMemoryFallback = "memory (redis unavailable)"
)

// Config holds configuration for cache creation.
type Config struct {
	RedisURL        string // empty selects the memory cache
	Prefix          string // Redis key prefix
	DefaultTTL      time.Duration
	MaxSize         int // memory cache entries, 0 = unlimited
	CleanupInterval time.Duration
}

// NewCache creates a Redis cache when RedisURL is set and reachable, and a
// memory cache otherwise. The returned name says which backend is in use.
func NewCache(cfg Config) (Cacher, string) {
	if cfg.RedisURL != "" {
		rc, err := NewRedisCacheFromURL(cfg.RedisURL, cfg.Prefix, cfg.DefaultTTL)
		if err == nil {
			slog.Info("using redis cache", "url", SanitizeRedisURL(cfg.RedisURL))
			return rc, BackendRedis
		}
		slog.Warn("redis unavailable, falling back to memory cache",
			"url", SanitizeRedisURL(cfg.RedisURL), "error", err)
		return newMemoryFromConfig(cfg), BackendMemoryFallback
	}

	return newMemoryFromConfig(cfg), BackendMemory
}

func newMemoryFromConfig(cfg Config) *MemoryCache {
	interval := cfg.CleanupInterval
	if interval <= 0 {
		interval = time.Minute
	}
	return NewMemoryCache(MemoryCacheOptions{
		DefaultTTL:      cfg.DefaultTTL,
		MaxSize:         cfg.MaxSize,
		CleanupInterval: interval,
	})
}

// SanitizeRedisURL masks the password in a Redis URL for logging.
func SanitizeRedisURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "[invalid URL]"
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "***")
	}
	return u.String()
}
