package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config carries everything the process reads from the environment.
type Config struct {
	DatabaseURL string
	AppPort     string
	JWTSecret   string
	TokenTTL    time.Duration

	// AllowNegativeStock lets an adjustment take quantity-on-hand below
	// zero (e.g. backorders). Defaults to true to match historical
	// behaviour; set ALLOW_NEGATIVE_STOCK=false to enforce a floor.
	AllowNegativeStock bool
}

// Load builds a Config from the environment.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		AppPort:            os.Getenv("APP_PORT"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		TokenTTL:           24 * time.Hour,
		AllowNegativeStock: true,
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.AppPort == "" {
		cfg.AppPort = "8080"
	}
	if v := os.Getenv("TOKEN_TTL_HOURS"); v != "" {
		hours, err := strconv.Atoi(v)
		if err != nil || hours <= 0 {
			return nil, fmt.Errorf("invalid TOKEN_TTL_HOURS: %q", v)
		}
		cfg.TokenTTL = time.Duration(hours) * time.Hour
	}
	if v := os.Getenv("ALLOW_NEGATIVE_STOCK"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid ALLOW_NEGATIVE_STOCK: %q", v)
		}
		cfg.AllowNegativeStock = b
	}
	return cfg, nil
}
