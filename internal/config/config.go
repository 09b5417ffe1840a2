// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package config loads application settings from the environment and an
// optional .env or config.env file. Environment variables win.
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration values.
type Config struct {
	// Server settings
	Host     string
	Port     string
	Env      string // "development", "production", "testing"
	LogLevel string // "debug", "info", "warn", "error"

	// PostgreSQL connection
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Valkey (Redis-compatible cache)
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string

	// Admin API
	AdminToken     string
	AdminRateLimit int // requests per minute per client, 0 disables

	// Catalog listing
	PageSize int
	CacheTTL time.Duration
}

var defaults = map[string]any{
	"APP_HOST":          "0.0.0.0",
	"APP_PORT":          "8080",
	"APP_ENV":           "development",
	"LOG_LEVEL":         "info",
	"POSTGRES_HOST":     "localhost",
	"POSTGRES_PORT":     "5432",
	"POSTGRES_USER":     "catalogpress",
	"POSTGRES_PASSWORD": "changeme",
	"POSTGRES_DB":       "catalogpress",
	"POSTGRES_SSLMODE":  "disable",
	"VALKEY_HOST":       "localhost",
	"VALKEY_PORT":       "6379",
	"VALKEY_PASSWORD":   "",
	"ADMIN_TOKEN":       "",
	"ADMIN_RATE_LIMIT":  120,
	"CATALOG_PAGE_SIZE": 12,
	"CATALOG_CACHE_TTL": "5m",
}

// Load reads configuration from the environment, falling back to .env or
// config.env in the working directory and then to development defaults.
// Production refuses the default database password and an empty admin token.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigType("env")
	for _, name := range []string{".env", "config.env"} {
		v.SetConfigFile(name)
		_ = v.MergeInConfig() // optional
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	cfg := &Config{
		Host:     v.GetString("APP_HOST"),
		Port:     v.GetString("APP_PORT"),
		Env:      v.GetString("APP_ENV"),
		LogLevel: v.GetString("LOG_LEVEL"),

		DBHost:     v.GetString("POSTGRES_HOST"),
		DBPort:     v.GetString("POSTGRES_PORT"),
		DBUser:     v.GetString("POSTGRES_USER"),
		DBPassword: v.GetString("POSTGRES_PASSWORD"),
		DBName:     v.GetString("POSTGRES_DB"),
		DBSSLMode:  v.GetString("POSTGRES_SSLMODE"),

		ValkeyHost:     v.GetString("VALKEY_HOST"),
		ValkeyPort:     v.GetString("VALKEY_PORT"),
		ValkeyPassword: v.GetString("VALKEY_PASSWORD"),

		AdminToken:     v.GetString("ADMIN_TOKEN"),
		AdminRateLimit: v.GetInt("ADMIN_RATE_LIMIT"),

		PageSize: v.GetInt("CATALOG_PAGE_SIZE"),
		CacheTTL: v.GetDuration("CATALOG_CACHE_TTL"),
	}

	if cfg.PageSize < 1 {
		return nil, fmt.Errorf("CATALOG_PAGE_SIZE must be at least 1, got %d", cfg.PageSize)
	}
	if cfg.CacheTTL < 0 {
		return nil, fmt.Errorf("CATALOG_CACHE_TTL must not be negative")
	}

	if cfg.Env == "production" {
		if cfg.DBPassword == "changeme" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
		if cfg.AdminToken == "" {
			return nil, fmt.Errorf("ADMIN_TOKEN must be set in production")
		}
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string. The password is URL-encoded.
func (c *Config) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + c.DBSSLMode,
	}
	return u.String()
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// ValkeyAddr returns the cache address (host:port).
func (c *Config) ValkeyAddr() string {
	return fmt.Sprintf("%s:%s", c.ValkeyHost, c.ValkeyPort)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// SlogLevel maps LogLevel to a slog level. Unknown values mean info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
