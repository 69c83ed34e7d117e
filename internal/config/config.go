// Package config loads the optional waypoint.yaml file used by the CLI.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/aretw0/waypoint/pkg/domain"
	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = "waypoint.yaml"

// Store backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

// Config is the CLI configuration.
type Config struct {
	// Dir is the Loam repository holding tour documents.
	Dir      string  `yaml:"dir"`
	LogLevel string  `yaml:"log_level"`
	Store    Store   `yaml:"store"`
	HTTP     HTTP    `yaml:"http"`
	Callout  Callout `yaml:"callout"`
}

// Store selects where completion flags live.
type Store struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
	Redis   Redis  `yaml:"redis"`
}

// Redis configures the redis backend.
type Redis struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	Prefix   string        `yaml:"prefix"`
	TTL      time.Duration `yaml:"ttl"`
}

// HTTP configures the serve command.
type HTTP struct {
	Addr string `yaml:"addr"`
}

// Callout tunes placement and timing.
type Callout struct {
	Offset       float64       `yaml:"offset"`
	Margin       float64       `yaml:"margin"`
	FadeOut      time.Duration `yaml:"fade_out"`
	ScrollSettle time.Duration `yaml:"scroll_settle"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Dir:      ".",
		LogLevel: "info",
		Store: Store{
			Backend: BackendFile,
			Path:    ".waypoint/completions.json",
			Redis: Redis{
				Addr:   "localhost:6379",
				Prefix: "waypoint:",
			},
		},
		HTTP: HTTP{Addr: ":8080"},
		Callout: Callout{
			Offset:       domain.DefaultOffset,
			Margin:       domain.DefaultMargin,
			FadeOut:      domain.FadeOutDelay,
			ScrollSettle: domain.ScrollSettleDelay,
		},
	}
}

// Load reads path over the defaults. An empty path tries DefaultFile and
// falls back to the defaults when it does not exist; an explicit path must
// exist.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	f, err := os.Open(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode parses YAML from r over the defaults and validates the result.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks backend-specific requirements.
func (c Config) Validate() error {
	switch c.Store.Backend {
	case BackendMemory:
	case BackendFile:
		if c.Store.Path == "" {
			return fmt.Errorf("config: store.path is required for the file backend")
		}
	case BackendRedis:
		if c.Store.Redis.Addr == "" {
			return fmt.Errorf("config: store.redis.addr is required for the redis backend")
		}
	default:
		return fmt.Errorf("config: unknown store backend %q", c.Store.Backend)
	}
	if c.Callout.Offset < 0 || c.Callout.Margin < 0 {
		return fmt.Errorf("config: callout offset and margin must not be negative")
	}
	return nil
}
