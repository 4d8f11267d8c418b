// Package config loads client configuration.
//
// Sources, highest priority first: explicit --config path, CONFIG_PATH,
// ./pawnbook.yaml, environment only. A .env file next to the working
// directory is folded into the environment first (existing variables win).
package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	BaseURL string        `yaml:"base_url" env:"PAWNBOOK_BASE_URL" env-default:"http://localhost:8080"`
	Timeout time.Duration `yaml:"timeout" env:"PAWNBOOK_TIMEOUT" env-default:"15s"`
	Store   StoreConfig   `yaml:"store"`
	Log     LogConfig     `yaml:"log"`
	OTEL    OTELConfig    `yaml:"otel"`
}

// StoreConfig selects where the token pair is persisted. The file backend is
// the default; redis serves shops with several counter terminals sharing one
// session.
type StoreConfig struct {
	Backend     string `yaml:"backend" env:"PAWNBOOK_STORE_BACKEND" env-default:"file"`
	Path        string `yaml:"path" env:"PAWNBOOK_STORE_PATH"`
	RedisAddr   string `yaml:"redis_addr" env:"PAWNBOOK_REDIS_ADDR" env-default:"127.0.0.1:6379"`
	RedisDB     int    `yaml:"redis_db" env:"PAWNBOOK_REDIS_DB" env-default:"0"`
	RedisPrefix string `yaml:"redis_prefix" env:"PAWNBOOK_REDIS_PREFIX" env-default:"pawnbook"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"PAWNBOOK_LOG_LEVEL" env-default:"info"`
	Format string `yaml:"format" env:"PAWNBOOK_LOG_FORMAT" env-default:"text"`
}

type OTELConfig struct {
	Enabled         bool          `yaml:"enabled" env:"PAWNBOOK_OTEL_ENABLED" env-default:"false"`
	Endpoint        string        `yaml:"endpoint" env:"PAWNBOOK_OTEL_ENDPOINT" env-default:"localhost:4317"`
	Insecure        bool          `yaml:"insecure" env:"PAWNBOOK_OTEL_INSECURE" env-default:"true"`
	ServiceName     string        `yaml:"service_name" env:"PAWNBOOK_OTEL_SERVICE_NAME" env-default:"pawnbook"`
	Environment     string        `yaml:"environment" env:"PAWNBOOK_OTEL_ENVIRONMENT" env-default:"local"`
	MetricsInterval time.Duration `yaml:"metrics_interval" env:"PAWNBOOK_OTEL_METRICS_INTERVAL" env-default:"30s"`
}

// MustLoad panics on a load error; used from main only.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

func Load(path string) (*Config, error) {
	if err := LoadEnvFile(".env"); err != nil {
		return nil, err
	}

	var cfg Config
	read := func(p string) error {
		if _, err := os.Stat(p); err != nil {
			return fmt.Errorf("config file %q: %w", p, err)
		}
		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return fmt.Errorf("parse config %q: %w", p, err)
		}
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return fmt.Errorf("overlay env: %w", err)
		}
		return nil
	}

	switch {
	case path != "":
		if err := read(path); err != nil {
			return nil, err
		}
	case os.Getenv("CONFIG_PATH") != "":
		if err := read(os.Getenv("CONFIG_PATH")); err != nil {
			return nil, err
		}
	default:
		if _, err := os.Stat("pawnbook.yaml"); err == nil {
			if err := read("pawnbook.yaml"); err != nil {
				return nil, err
			}
		} else if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("read env: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("base_url %q is not an absolute URL", c.BaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	switch c.Store.Backend {
	case "file", "redis", "memory":
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	return nil
}
