package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultListenAddr     = ":8080"
	defaultJWTSecret      = "change-me-jwt-secret"
	defaultJWTTTL         = "24h"
	defaultRequestTimeout = "10s"
)

// Config is the back-office runtime configuration. One deployment serves
// one agency's view; AgencyID scopes every platform store call.
type Config struct {
	AppEnv     string
	ListenAddr string
	AgencyID   string

	JWTSecret string
	JWTTTL    time.Duration

	// PlatformAPIURL set: the service talks to the platform core API.
	// Unset: standalone mode against DatabaseURL (local dev, tests).
	PlatformAPIURL   string
	PlatformAPIToken string
	RequestTimeout   time.Duration

	DatabaseURL string
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.ListenAddr = getEnv("LISTEN_ADDR", defaultListenAddr)
	cfg.AgencyID = strings.TrimSpace(os.Getenv("AGENCY_ID"))
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))

	var err error
	cfg.JWTTTL, err = parseDurationEnv("JWT_TTL", defaultJWTTTL)
	if err != nil {
		return nil, err
	}
	cfg.RequestTimeout, err = parseDurationEnv("PLATFORM_REQUEST_TIMEOUT", defaultRequestTimeout)
	if err != nil {
		return nil, err
	}

	cfg.PlatformAPIURL = strings.TrimRight(strings.TrimSpace(os.Getenv("PLATFORM_API_URL")), "/")
	cfg.PlatformAPIToken = strings.TrimSpace(os.Getenv("PLATFORM_API_TOKEN"))
	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.AgencyID == "" {
		return fmt.Errorf("AGENCY_ID must be set")
	}
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if cfg.PlatformAPIURL == "" && cfg.DatabaseURL == "" {
		return fmt.Errorf("either PLATFORM_API_URL or DATABASE_URL must be set")
	}

	if isProdLike(cfg.AppEnv) {
		if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if cfg.PlatformAPIURL != "" && cfg.PlatformAPIToken == "" {
			return fmt.Errorf("in prod/release PLATFORM_API_TOKEN must be set")
		}
	}

	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
