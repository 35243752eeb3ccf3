// Package config loads wast-encode settings from the environment.
package config

import (
	"strings"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/wast-encode/errors"
)

// Config holds the environment settings. Command-line arguments take
// precedence over these.
type Config struct {
	// Dir is the base directory used when no positional argument is given.
	Dir string `env:"WAST_ENCODE_DIR"`

	// LogLevel enables logging at the given zap level; empty disables it.
	LogLevel string `env:"WAST_ENCODE_LOG_LEVEL"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "parse env")
	}
	return cfg, nil
}

// ResolveDir picks the base directory: the first positional argument, or
// Dir when there is none.
func (c Config) ResolveDir(args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if c.Dir != "" {
		return c.Dir, nil
	}
	return "", errors.InvalidInput(errors.PhaseConfig, "base directory required (argument or WAST_ENCODE_DIR)")
}

// NewLogger builds the logger for LogLevel. Logs go to standard error in
// console format so they never mix with encoded output.
func (c Config) NewLogger() (*zap.Logger, error) {
	if strings.TrimSpace(c.LogLevel) == "" {
		return zap.NewNop(), nil
	}

	level, err := zapcore.ParseLevel(strings.TrimSpace(c.LogLevel))
	if err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "log level")
	}

	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	zc.DisableStacktrace = true
	return zc.Build()
}
