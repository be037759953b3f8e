package cmd

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

const apiKeyEnv = "ALPHAVANTAGE_API_KEY"

// Config holds the shell's settings. The core takes no flags or environment
// variables; everything it needs is constructed here.
type Config struct {
	DatabasePath    string `toml:"database_path"`
	APIKey          string `toml:"alphavantage_api_key"`
	RatePerMinute   int    `toml:"rate_per_minute"`
	FetchTimeoutSec int    `toml:"fetch_timeout_seconds"`
	Currency        string `toml:"currency"`
}

// FetchTimeout returns the configured per-fetch bound.
func (c Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSec) * time.Second
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "sfo.toml"
	}
	return filepath.Join(home, ".sfo", "config.toml")
}

// LoadConfig reads the TOML config at path. A missing file yields defaults;
// a present but malformed file is an error.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil && !os.IsNotExist(err) {
		return Config{}, err
	}
	applyDefaults(&cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.DatabasePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			cfg.DatabasePath = "sfo.db"
		} else {
			cfg.DatabasePath = filepath.Join(home, ".sfo", "sfo.db")
		}
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv(apiKeyEnv)
	}
	if cfg.RatePerMinute <= 0 {
		cfg.RatePerMinute = 5 // Alpha Vantage free-tier limit.
	}
	if cfg.FetchTimeoutSec <= 0 {
		cfg.FetchTimeoutSec = 10
	}
	if cfg.Currency == "" {
		cfg.Currency = "USD"
	}
}
