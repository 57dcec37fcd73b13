// internal/logging/logger.go
// Package logging owns the process-wide zap logger for covmerge. The logger
// sits behind an atomic pointer so tests can swap it in without races, and
// every merge or watch run tags its lines with the run's ULID through
// ForRun, which is how one run's output is grouped after the fact.
package logging

import (
	"time"

	"go.uber.org/atomic"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	l         atomic.Pointer[zap.Logger]
	installed atomic.Bool
)

// Init builds and installs the process logger. jsonOutput selects zap's
// production JSON encoder; otherwise the development console encoder is
// used. Timestamps are RFC3339 in both modes.
func Init(jsonOutput bool) error {
	cfg := zap.NewDevelopmentConfig()
	if jsonOutput {
		cfg = zap.NewProductionConfig()
	}
	cfg.EncoderConfig.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.Format(time.RFC3339))
	}

	logger, err := cfg.Build()
	if err != nil {
		return err
	}
	Set(logger)
	return nil
}

// Set installs logger as the process logger. Tests use it to capture output
// (e.g. via zaptest or an observer core); a nil logger installs a nop.
func Set(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	l.Store(logger)
	installed.Store(true)
}

// Logger returns the installed logger, or a nop when neither Init nor Set
// has run, so callers never need to nil-check.
func Logger() *zap.Logger {
	if logger := l.Load(); logger != nil {
		return logger
	}
	return zap.NewNop()
}

// Sugar is shorthand for Logger().Sugar().
func Sugar() *zap.SugaredLogger { return Logger().Sugar() }

// ForRun returns a sugared logger with the run's correlation ID attached,
// so every line of one merge or watch iteration carries the same run_id.
func ForRun(runID string) *zap.SugaredLogger {
	return Sugar().With("run_id", runID)
}

// Initialised reports whether Init or Set has run.
func Initialised() bool { return installed.Load() }
