package config

import (
	"errors"
)

// Sentinel error kinds for loading and validating a run configuration.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)
