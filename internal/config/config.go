// Package config loads service configuration from the environment, with
// an optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr  string
	MySQLDSN  string
	RedisAddr string

	JWTSecret  string
	SessionTTL time.Duration
	BcryptCost int

	ListingCacheTTL time.Duration
	ShutdownTimeout time.Duration
}

// Load reads configuration from the environment. A missing .env file is
// not an error; a missing JWT secret is.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		HTTPAddr:        getenv("HTTP_ADDR", ":8080"),
		MySQLDSN:        getenv("MYSQL_DSN", "root:root@tcp(localhost:3306)/invoicehub?parseTime=true"),
		RedisAddr:       getenv("REDIS_ADDR", "localhost:6379"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		SessionTTL:      24 * time.Hour,
		BcryptCost:      10,
		ListingCacheTTL: time.Hour,
		ShutdownTimeout: 5 * time.Second,
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET must be set")
	}

	if v := os.Getenv("SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse SESSION_TTL: %w", err)
		}
		cfg.SessionTTL = d
	}

	if v := os.Getenv("BCRYPT_COST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse BCRYPT_COST: %w", err)
		}
		cfg.BcryptCost = n
	}

	if v := os.Getenv("LISTING_CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse LISTING_CACHE_TTL: %w", err)
		}
		cfg.ListingCacheTTL = d
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
