// Package config loads the runtime settings of the seamcarve command.
//
// Settings are resolved in increasing order of precedence: built-in defaults,
// an optional YAML file, the environment (a .env file in the working directory
// is loaded first, when present) and finally the command line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variable names.
const (
	EnvWorkers  = "SEAMCARVE_WORKERS"
	EnvLogLevel = "SEAMCARVE_LOG_LEVEL"
	EnvLogFile  = "SEAMCARVE_LOG_FILE"
	EnvDev      = "SEAMCARVE_DEV"
	EnvDebug    = "SEAMCARVE_DEBUG"
)

var validLevels = []string{"debug", "info", "warn", "warning", "error", "fatal"}

// Config holds the runtime settings.
type Config struct {
	Workers     int    `yaml:"workers"`
	LogLevel    string `yaml:"log_level"`
	LogFile     string `yaml:"log_file"`
	Development bool   `yaml:"development"`
	Debug       bool   `yaml:"debug"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Workers:  runtime.NumCPU(),
		LogLevel: "info",
	}
}

// Load resolves the configuration. path is an optional YAML file; an empty path skips it.
func Load(path string) (*Config, error) {
	// A missing .env file is not an error.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("unable to read the config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("unable to parse the config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v, ok := lookup(EnvWorkers); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %q is not a number", EnvWorkers, v)
		}
		c.Workers = n
	}
	if v, ok := lookup(EnvLogLevel); ok {
		c.LogLevel = v
	}
	if v, ok := lookup(EnvLogFile); ok {
		c.LogFile = v
	}
	if v, ok := lookup(EnvDev); ok {
		b, err := parseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDev, err)
		}
		c.Development = b
	}
	if v, ok := lookup(EnvDebug); ok {
		b, err := parseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDebug, err)
		}
		c.Debug = b
	}
	return nil
}

// Validate checks the settings for consistency.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	lvl := strings.ToLower(strings.TrimSpace(c.LogLevel))
	for _, v := range validLevels {
		if v == lvl {
			return nil
		}
	}
	return fmt.Errorf("unknown log level %q", c.LogLevel)
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return strings.TrimSpace(v), true
}

func parseBool(v string) (bool, error) {
	switch strings.ToLower(v) {
	case "true", "1", "yes", "on":
		return true, nil
	case "false", "0", "no", "off":
		return false, nil
	}
	return false, fmt.Errorf("%q is not a boolean", v)
}
