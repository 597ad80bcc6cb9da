// Package config reads runtime settings from the environment.
// cmd/server loads a .env file first, so values there apply too.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"
)

type Config struct {
	Port        string
	DatabaseURL string
	DBMaxOpen   int

	JWTSecret []byte
	TokenTTL  time.Duration

	EncryptionKey string
	BlindIndexKey string

	Env      string
	LogLevel string
	Location *time.Location

	CORSOrigins []string
	TrustProxy  bool

	AuthRatePerMinute int
	AuthRateBurst     int
}

var (
	ErrMissingJWTSecret = errors.New("JWT_SECRET is required")
	ErrMissingKeys      = errors.New("ENCRYPTION_KEY and BLIND_INDEX_KEY are required")
)

// Load builds a Config from the environment, applying defaults where a value is unset.
func Load() (*Config, error) {
	cfg := &Config{
		Port:              getenv("PORT", "8080"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		EncryptionKey:     os.Getenv("ENCRYPTION_KEY"),
		BlindIndexKey:     os.Getenv("BLIND_INDEX_KEY"),
		Env:               getenv("APP_ENV", "production"),
		LogLevel:          os.Getenv("LOG_LEVEL"),
		CORSOrigins:       splitList(getenv("CORS_ALLOWED_ORIGINS", "*")),
		DBMaxOpen:         10,
		TokenTTL:          24 * time.Hour,
		AuthRatePerMinute: 20,
		AuthRateBurst:     5,
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, ErrMissingJWTSecret
	}
	cfg.JWTSecret = []byte(secret)

	if cfg.EncryptionKey == "" || cfg.BlindIndexKey == "" {
		return nil, ErrMissingKeys
	}

	var err error
	if cfg.TokenTTL, err = durationEnv("TOKEN_TTL", cfg.TokenTTL); err != nil {
		return nil, err
	}
	if cfg.DBMaxOpen, err = intEnv("DB_MAX_OPEN_CONNS", cfg.DBMaxOpen); err != nil {
		return nil, err
	}
	if cfg.AuthRatePerMinute, err = intEnv("AUTH_RATE_PER_MINUTE", cfg.AuthRatePerMinute); err != nil {
		return nil, err
	}
	if cfg.AuthRateBurst, err = intEnv("AUTH_RATE_BURST", cfg.AuthRateBurst); err != nil {
		return nil, err
	}

	if cfg.TrustProxy, err = boolEnv("TRUST_PROXY", false); err != nil {
		return nil, err
	}

	tz := getenv("APP_TIMEZONE", "UTC")
	cfg.Location, err = time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("APP_TIMEZONE %q: %w", tz, err)
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func intEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer, got %q", key, v)
	}
	return n, nil
}

func boolEnv(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean, got %q", key, v)
	}
	return b, nil
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration, got %q", key, v)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
