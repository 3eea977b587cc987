// Package config loads slider settings from defaults, an optional YAML file
// and SLIDER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/jwulff/slider/internal/db"
	"github.com/jwulff/slider/internal/remote"
	"github.com/jwulff/slider/internal/slider"
)

// Config holds runtime settings.
type Config struct {
	Deck       string        `yaml:"deck"`
	DBPath     string        `yaml:"db_path"`
	Socket     string        `yaml:"socket"`
	Period     time.Duration `yaml:"period"`
	StopOnNext bool          `yaml:"stop_on_next"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		DBPath: db.DefaultDBPath(),
		Socket: remote.SocketPath(),
		Period: slider.DefaultPeriod,
	}
}

// Load applies, in order: defaults, the YAML file at path (skipped when path
// is empty or missing), a .env file in the working directory, then
// environment variables.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	// A missing .env is normal.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("SLIDER_DECK"); v != "" {
		c.Deck = v
	}
	if v := os.Getenv("SLIDER_DB_PATH"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("SLIDER_SOCKET"); v != "" {
		c.Socket = v
	}
	if v := os.Getenv("SLIDER_PERIOD"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("SLIDER_PERIOD: %w", err)
		}
		c.Period = d
	}
	if v := os.Getenv("SLIDER_STOP_ON_NEXT"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("SLIDER_STOP_ON_NEXT: %w", err)
		}
		c.StopOnNext = b
	}
	return nil
}

// Validate rejects settings the slideshow cannot run with.
func (c Config) Validate() error {
	if c.Period <= 0 {
		return fmt.Errorf("period must be positive, got %s", c.Period)
	}
	return nil
}

// CycleOptions converts the config into slider options.
func (c Config) CycleOptions() slider.Options {
	return slider.Options{Period: c.Period, StopOnNext: c.StopOnNext}
}
