// Package logging provides the structured logger used across folio.
//
// The dashboard owns the terminal, so logs go to a file rather than stdout.
package logging

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the logging surface used by folio packages. It also satisfies
// the logger interface resty expects.
type Logger interface {
	With(args ...any) Logger

	Debugf(template string, args ...any)
	Infof(template string, args ...any)
	Warnf(template string, args ...any)
	Errorf(template string, args ...any)

	Sync() error
}

// ZapLogger is a Logger backed by a zap SugaredLogger.
type ZapLogger struct {
	logger *zap.SugaredLogger
}

// ParseLevel converts a level name ("debug", "info", "warn", "error").
func ParseLevel(name string) (zapcore.Level, error) {
	if name == "" {
		return zapcore.InfoLevel, nil
	}
	level, err := zapcore.ParseLevel(name)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return level, nil
}

// New builds a JSON logger writing to path at the given level. The returned
// func flushes buffered entries and should be deferred by the caller.
func New(level, path string) (*ZapLogger, func(), error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := cfg.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("can't init logger: %w", err)
	}

	logger := &ZapLogger{logger: l.Sugar()}

	syncFunc := func() {
		if err := logger.Sync(); err != nil && !errors.Is(err, syscall.EBADF) && !errors.Is(err, syscall.ENOTTY) {
			fmt.Fprintf(os.Stderr, "can't sync logger: %v\n", err)
		}
	}

	return logger, syncFunc, nil
}

// Wrap adapts an existing zap logger, mostly for tests using zaptest/observer.
func Wrap(l *zap.Logger) *ZapLogger {
	return &ZapLogger{logger: l.Sugar()}
}

// Nop returns a logger that discards everything.
func Nop() *ZapLogger {
	return Wrap(zap.NewNop())
}

func (l *ZapLogger) With(args ...any) Logger {
	return &ZapLogger{logger: l.logger.With(args...)}
}

func (l *ZapLogger) Debugf(template string, args ...any) {
	l.logger.Debugf(template, args...)
}

func (l *ZapLogger) Infof(template string, args ...any) {
	l.logger.Infof(template, args...)
}

func (l *ZapLogger) Warnf(template string, args ...any) {
	l.logger.Warnf(template, args...)
}

func (l *ZapLogger) Errorf(template string, args ...any) {
	l.logger.Errorf(template, args...)
}

func (l *ZapLogger) Sync() error {
	return l.logger.Sync()
}
