// Package logging builds the process logger. Library packages take a
// logr.Logger; the binary backs it with zap.
package logging

import (
	"fmt"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a production zap logger writing to stderr. verbose lowers the
// level to debug, which also enables logr V(1) messages.
func New(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// Logr adapts z to logr. A nil z yields a logger that discards everything.
func Logr(z *zap.Logger) logr.Logger {
	if z == nil {
		return logr.Discard()
	}
	return zapr.NewLogger(z)
}
