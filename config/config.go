// Package config loads service and CLI settings from .env files, an optional
// YAML file and environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is looked up in the working directory when no explicit
// path or $SEO_CONFIG is given.
const DefaultConfigFile = "seo-optimizer.yaml"

// Environment variable names.
const (
	EnvConfig       = "SEO_CONFIG"
	EnvPort         = "PORT"
	EnvGinMode      = "GIN_MODE"
	EnvDataDir      = "SEO_DATA_DIR"
	EnvLogLevel     = "SEO_LOG_LEVEL"
	EnvLogFormat    = "SEO_LOG_FORMAT"
	EnvFetchTimeout = "SEO_FETCH_TIMEOUT"
	EnvUserAgent    = "SEO_USER_AGENT"
	EnvRateLimit    = "SEO_RATE_LIMIT"
	EnvRateBurst    = "SEO_RATE_BURST"
	EnvParallel     = "SEO_PARALLEL"
	EnvDevMode      = "DEV_MODE"
)

// Config holds every tunable of the server and the CLI.
type Config struct {
	Port         string        `yaml:"port"`
	GinMode      string        `yaml:"gin_mode"`
	DataDir      string        `yaml:"data_dir"`
	LogLevel     string        `yaml:"log_level"`
	LogFormat    string        `yaml:"log_format"`
	FetchTimeout time.Duration `yaml:"fetch_timeout"`
	UserAgent    string        `yaml:"user_agent"`
	RateLimit    float64       `yaml:"rate_limit"`
	RateBurst    int           `yaml:"rate_burst"`
	Parallel     bool          `yaml:"parallel"`
	DevMode      bool          `yaml:"dev_mode"`
}

// NewConfig returns a Config populated with defaults.
func NewConfig() *Config {
	return &Config{
		Port:         "8082",
		GinMode:      "release",
		DataDir:      filepath.Join(xdg.DataHome, "seo-optimizer"),
		LogLevel:     "info",
		LogFormat:    "text",
		FetchTimeout: 15 * time.Second,
		UserAgent:    "SEOAnalyzer/1.0",
		RateLimit:    2,
		RateBurst:    5,
		Parallel:     true,
	}
}

// AnalysesDir is where saved analyses are written.
func (c *Config) AnalysesDir() string {
	return filepath.Join(c.DataDir, "analyses")
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return ErrInvalidPort
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return ErrInvalidGinMode
	}
	if c.DataDir == "" {
		return ErrEmptyDataDir
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return ErrInvalidLogLevel
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return ErrInvalidLogFormat
	}
	if c.FetchTimeout <= 0 {
		return ErrInvalidFetchTimeout
	}
	if c.UserAgent == "" {
		return ErrEmptyUserAgent
	}
	if c.RateLimit <= 0 {
		return ErrInvalidRateLimit
	}
	if c.RateBurst < 1 {
		return ErrInvalidRateBurst
	}
	return nil
}

// Load builds the configuration from defaults, .env.development or .env in
// the working directory, the YAML file at path (or $SEO_CONFIG, or
// ./seo-optimizer.yaml when present) and environment overrides. Real
// environment variables take precedence over .env values.
func Load(path string) (*Config, error) {
	return load(".", path, os.LookupEnv)
}

type lookupFunc func(key string) (string, bool)

func load(dir, path string, lookupEnv lookupFunc) (*Config, error) {
	cfg := NewConfig()
	lookup := withDotEnv(dir, lookupEnv)

	if path == "" {
		path, _ = lookup(EnvConfig)
	}
	explicit := path != ""
	if !explicit {
		path = filepath.Join(dir, DefaultConfigFile)
	}

	if err := cfg.loadFile(path); err != nil {
		if !errors.Is(err, ErrConfigNotFound) || explicit {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(lookup); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// withDotEnv reads .env.development, falling back to .env, and consults it
// only for keys missing from the real environment.
func withDotEnv(dir string, lookupEnv lookupFunc) lookupFunc {
	values, err := godotenv.Read(filepath.Join(dir, ".env.development"))
	if err != nil {
		values, err = godotenv.Read(filepath.Join(dir, ".env"))
		if err != nil {
			values = map[string]string{}
		}
	}

	return func(key string) (string, bool) {
		if v, ok := lookupEnv(key); ok {
			return v, true
		}
		v, ok := values[key]
		return v, ok
	}
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrConfigNotFound
		}
		return err
	}
	return yaml.Unmarshal(data, c)
}

func (c *Config) applyEnv(lookup lookupFunc) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	str(EnvPort, &c.Port)
	str(EnvGinMode, &c.GinMode)
	str(EnvDataDir, &c.DataDir)
	str(EnvLogLevel, &c.LogLevel)
	str(EnvLogFormat, &c.LogFormat)
	str(EnvUserAgent, &c.UserAgent)

	if v, ok := lookup(EnvFetchTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvFetchTimeout, err)
		}
		c.FetchTimeout = d
	}
	if v, ok := lookup(EnvRateLimit); ok && v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRateLimit, err)
		}
		c.RateLimit = f
	}
	if v, ok := lookup(EnvRateBurst); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRateBurst, err)
		}
		c.RateBurst = n
	}
	if v, ok := lookup(EnvParallel); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvParallel, err)
		}
		c.Parallel = b
	}
	if v, ok := lookup(EnvDevMode); ok {
		c.DevMode = v == "true"
	}
	return nil
}
