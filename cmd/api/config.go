package main

import (
	"fmt"
	"os"
	"time"
)

// config holds the service settings read from the environment (after .env
// has been applied).
type config struct {
	Addr          string
	SessionTTL    time.Duration
	SweepInterval time.Duration
}

func loadConfig() (config, error) {
	cfg := config{
		Addr:          envOr("HTTP_ADDR", ":8080"),
		SessionTTL:    30 * time.Minute,
		SweepInterval: time.Minute,
	}

	var err error
	if cfg.SessionTTL, err = durationEnv("SESSION_TTL", cfg.SessionTTL); err != nil {
		return config{}, err
	}
	if cfg.SweepInterval, err = durationEnv("SESSION_SWEEP_INTERVAL", cfg.SweepInterval); err != nil {
		return config{}, err
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("parse %s: must be positive, got %s", key, d)
	}
	return d, nil
}
