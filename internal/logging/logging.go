// Package logging builds the process logger from the host configuration.
package logging

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/sghaida/beans/config"
)

// New returns a zap logger for cfg: JSON production encoding for "json",
// colourless development console encoding for "console". Output goes to stderr.
func New(cfg config.LogConfig, opts ...zap.Option) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("logging: level %q: %w", cfg.Level, err)
	}

	var zc zap.Config
	switch cfg.Format {
	case "json", "":
		zc = zap.NewProductionConfig()
	case "console":
		zc = zap.NewDevelopmentConfig()
		// stack traces on every warning are too noisy for a container log
		zc.Development = false
	default:
		return nil, fmt.Errorf("logging: unknown format %q", cfg.Format)
	}
	zc.Level = level

	logger, err := zc.Build(opts...)
	if err != nil {
		return nil, fmt.Errorf("logging: build: %w", err)
	}
	return logger, nil
}

// Must is New that panics on error. Intended for main packages.
func Must(cfg config.LogConfig, opts ...zap.Option) *zap.Logger {
	logger, err := New(cfg, opts...)
	if err != nil {
		panic(err)
	}
	return logger
}
