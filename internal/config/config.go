// Package config loads the nsapi command's settings from a YAML file and
// NSAPI_-prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ryhazerus/nsapi"
)

// Usage ledger drivers.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

// Config is the full command configuration.
type Config struct {
	UserAgent  string        `mapstructure:"user_agent"`
	BaseURL    string        `mapstructure:"base_url"`
	APIVersion int           `mapstructure:"api_version"`
	Timeout    time.Duration `mapstructure:"timeout"`
	Log        LogConfig     `mapstructure:"log"`
	Pacing     PacingConfig  `mapstructure:"pacing"`
	Usage      UsageConfig   `mapstructure:"usage"`
}

// LogConfig selects the log level: debug, info, warn or error.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// PacingConfig spaces requests on the client side. A zero rate disables it.
type PacingConfig struct {
	Rate  float64 `mapstructure:"rate"`
	Burst int     `mapstructure:"burst"`
}

// UsageConfig chooses where transmission counts are kept.
type UsageConfig struct {
	Window string `mapstructure:"window"`
	Driver string `mapstructure:"driver"`
	// DSN is a file path for sqlite or a redis:// URL for redis.
	DSN string `mapstructure:"dsn"`
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.UserAgent) == "" {
		return errors.New("config: user_agent is required; identify yourself to the API (e.g. \"MyBot/1.0 (me@example.com)\")")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("config: timeout must not be negative, got %s", c.Timeout)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log level %q", c.Log.Level)
	}
	if c.Pacing.Rate < 0 {
		return fmt.Errorf("config: pacing.rate must not be negative, got %v", c.Pacing.Rate)
	}
	if c.Pacing.Rate > 0 && c.Pacing.Burst < 1 {
		return fmt.Errorf("config: pacing.burst must be at least 1, got %d", c.Pacing.Burst)
	}
	if _, err := nsapi.ParseWindow(c.Usage.Window); err != nil {
		return fmt.Errorf("config: usage.window: %w", err)
	}
	switch c.Usage.Driver {
	case DriverMemory:
	case DriverSQLite, DriverRedis:
		if strings.TrimSpace(c.Usage.DSN) == "" {
			return fmt.Errorf("config: usage.dsn is required for the %s driver", c.Usage.Driver)
		}
	default:
		return fmt.Errorf("config: unknown usage.driver %q", c.Usage.Driver)
	}
	return nil
}
