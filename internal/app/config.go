package app

import (
	"errors"
	"fmt"
)

// Config holds everything one App invocation needs.
type Config struct {
	// InputPath points at a decomposition: a .hcl/.yaml file or a
	// directory of .hcl files. For decompile it points at a recipe YAML.
	InputPath string

	// OutputPath receives the emitted recipe; empty writes to stdout.
	OutputPath string

	LogFormat string
	LogLevel  string

	// Summary prints the session state summary after compiling.
	Summary bool
}

// NewConfig validates a Config and applies defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.InputPath == "" {
		return nil, errors.New("InputPath is a required configuration field and cannot be empty")
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid log format %q: must be 'text' or 'json'", cfg.LogFormat)
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}
	return &cfg, nil
}
