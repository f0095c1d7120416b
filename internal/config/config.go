// Package config loads and saves folio's settings.
//
// Settings come from built-in defaults, then the YAML file, then FOLIO_*
// environment variables (FOLIO_API_BASE_URL, FOLIO_REFRESH_INTERVAL, ...).
package config

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAPIBaseURL      = "http://localhost:8000"
	DefaultRequestTimeout  = 30 * time.Second
	DefaultRateLimit       = 10
	DefaultRefreshInterval = 60 * time.Second
	DefaultLogLevel        = "info"

	envPrefix = "FOLIO"
	appName   = "folio"
)

// Config holds the CLI configuration.
type Config struct {
	APIBaseURL      string        `yaml:"api_base_url" mapstructure:"api_base_url"`
	RequestTimeout  time.Duration `yaml:"request_timeout" mapstructure:"request_timeout"`
	RateLimit       int           `yaml:"rate_limit" mapstructure:"rate_limit"`
	RefreshInterval time.Duration `yaml:"refresh_interval" mapstructure:"refresh_interval"`
	LogLevel        string        `yaml:"log_level" mapstructure:"log_level"`
	LogFile         string        `yaml:"log_file" mapstructure:"log_file"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		APIBaseURL:      DefaultAPIBaseURL,
		RequestTimeout:  DefaultRequestTimeout,
		RateLimit:       DefaultRateLimit,
		RefreshInterval: DefaultRefreshInterval,
		LogLevel:        DefaultLogLevel,
		LogFile:         DefaultLogFile(),
	}
}

// ConfigDir returns the configuration directory path.
// Uses $XDG_CONFIG_HOME/folio if set, otherwise ~/.config/folio.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", appName)
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// DefaultLogFile returns the default log file path.
func DefaultLogFile() string {
	return filepath.Join(ConfigDir(), appName+".log")
}

// Load reads the config at path. A missing file yields the defaults, still
// subject to environment overrides.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	defaults := DefaultConfig()
	v.SetDefault("api_base_url", defaults.APIBaseURL)
	v.SetDefault("request_timeout", defaults.RequestTimeout)
	v.SetDefault("rate_limit", defaults.RateLimit)
	v.SetDefault("refresh_interval", defaults.RefreshInterval)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("log_file", defaults.LogFile)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	return &cfg, nil
}

// Save writes the config to path, creating its directory if needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate checks that the values can be used to build a client.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api_base_url must be an http(s) URL, got %q", c.APIBaseURL)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("rate_limit must not be negative, got %d", c.RateLimit)
	}
	if c.RefreshInterval < 0 {
		return fmt.Errorf("refresh_interval must not be negative, got %s", c.RefreshInterval)
	}
	return nil
}
