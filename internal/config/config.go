// Package config loads the client configuration: a TOML file in the
// per-user config dir, with environment variables taking precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Duration is a time.Duration that unmarshals from TOML strings like
// "5s" or "2m".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

type Config struct {
	APIBaseURL     string   `toml:"api_base_url"`
	RequestTimeout Duration `toml:"request_timeout"`
	LogLevel       string   `toml:"log_level"`
	TokenPath      string   `toml:"token_path"`
	JournalPath    string   `toml:"journal_path"`
}

func Default() Config {
	return Config{
		APIBaseURL:     "http://localhost:3000/api",
		RequestTimeout: Duration{5 * time.Second},
		LogLevel:       "info",
	}
}

// DefaultDir is where the config file, token and journal live.
func DefaultDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "feedzztrab"), nil
}

// Load reads the TOML file at path. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overlays FEEDZZTRAB_* environment variables on the config.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("FEEDZZTRAB_API_URL"); v != "" {
		c.APIBaseURL = v
	}
	if v := os.Getenv("FEEDZZTRAB_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid FEEDZZTRAB_TIMEOUT %q: %w", v, err)
		}
		c.RequestTimeout = Duration{d}
	}
	if v := os.Getenv("FEEDZZTRAB_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("FEEDZZTRAB_TOKEN_PATH"); v != "" {
		c.TokenPath = v
	}
	if v := os.Getenv("FEEDZZTRAB_JOURNAL_PATH"); v != "" {
		c.JournalPath = v
	}
	return nil
}
