package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrConfigNotFound     = goerr.New("configuration file not found")
	ErrInvalidConfig      = goerr.New("invalid configuration")
	ErrInvalidBackend     = goerr.New("invalid repository backend")
	ErrMissingFlag        = goerr.New("required flag is missing")
	ErrConflictingAuth    = goerr.New("no-auth cannot be combined with JWT authentication")
	ErrInvalidLogSettings = goerr.New("invalid log settings")
)

// Context keys for error values
const (
	ConfigPathKey = "config_path"
	FlagKey       = "flag"
	BackendKey    = "backend"
)
