package config

import "errors"

// Validation errors returned by Config.Validate.
var (
	ErrInvalidPort         = errors.New("invalid port: must be a number between 1 and 65535")
	ErrInvalidGinMode      = errors.New("invalid gin mode: must be debug, release or test")
	ErrEmptyDataDir        = errors.New("data directory must not be empty")
	ErrInvalidLogLevel     = errors.New("invalid log level: must be debug, info, warn or error")
	ErrInvalidLogFormat    = errors.New("invalid log format: must be text or json")
	ErrInvalidFetchTimeout = errors.New("invalid fetch timeout: must be positive")
	ErrEmptyUserAgent      = errors.New("user agent must not be empty")
	ErrInvalidRateLimit    = errors.New("invalid rate limit: must be positive")
	ErrInvalidRateBurst    = errors.New("invalid rate burst: must be at least 1")
)

// ErrConfigNotFound is returned when an explicitly named configuration file
// does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")
