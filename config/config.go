// Package config loads environment variables and provides a typed Config used across the service.
// The four OAuth credentials are required; everything else has a sensible default so the
// binary can run locally with minimal setup.
package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	// OAuth 1.0a credentials (all required)
	ConsumerKey       string
	ConsumerSecret    string
	AccessToken       string
	AccessTokenSecret string

	// ClockLocation is the timezone used to pick the clock glyph.
	// Nil means the process-local zone, matching the original behavior.
	ClockLocation *time.Location

	// UpdateInterval is the spacing between scheduled name updates.
	UpdateInterval time.Duration

	// HTTPAddr is the listen address for the health/metrics server.
	HTTPAddr string
}

// required lists the environment variables the service cannot start without.
var required = []string{
	"OAUTH_CONSUMER_KEY",
	"OAUTH_CONSUMER_SECRET",
	"OAUTH_ACCESS_TOKEN",
	"OAUTH_ACCESS_TOKEN_SECRET",
}

// Load reads environment variables and applies defaults. It fails fast when any
// of the OAuth credentials is absent, naming the missing variable, so a
// misconfigured deploy dies before touching the network.
func Load() (*Config, error) {
	for _, name := range required {
		if os.Getenv(name) == "" {
			return nil, fmt.Errorf("missing required env %s", name)
		}
	}

	cfg := &Config{
		ConsumerKey:       os.Getenv("OAUTH_CONSUMER_KEY"),
		ConsumerSecret:    os.Getenv("OAUTH_CONSUMER_SECRET"),
		AccessToken:       os.Getenv("OAUTH_ACCESS_TOKEN"),
		AccessTokenSecret: os.Getenv("OAUTH_ACCESS_TOKEN_SECRET"),
	}

	// Timezone for glyph selection. Left unset, the process-local zone is used;
	// DST behavior is then whatever the host observes.
	if v := os.Getenv("CLOCK_TIMEZONE"); v != "" {
		loc, err := time.LoadLocation(v)
		if err != nil {
			return nil, fmt.Errorf("invalid CLOCK_TIMEZONE %q: %w", v, err)
		}
		cfg.ClockLocation = loc
	}

	cfg.UpdateInterval = 30 * time.Minute
	if v := os.Getenv("UPDATE_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid UPDATE_INTERVAL %q", v)
		}
		cfg.UpdateInterval = d
	}

	cfg.HTTPAddr = os.Getenv("HTTP_ADDR")
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}

	return cfg, nil
}
