// Package logging собирает zap-логгер из настроек.
package logging

import (
	"fmt"

	"contact-form/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New создаёт логгер: JSON в production, консольный формат в development.
// verbose поднимает уровень до debug независимо от настроек.
func New(cfg config.LoggingConfig, verbose bool) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("logging level: %w", err)
	}
	if verbose {
		level = zapcore.DebugLevel
	}

	zc := zap.NewProductionConfig()
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	return zc.Build()
}
