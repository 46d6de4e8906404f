// Package logger provides the process-wide structured logger.
//
// Diagnostics about typemend itself go to stderr through zap; the user-facing
// report is printed separately on stdout.
package logger

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu          sync.RWMutex
	global      = zap.NewNop()
	atomicLevel = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	once        sync.Once
)

// Init initializes the global logger.
// level: debug, info, warn, error
// format: json or console
//
// The logger is built once; later calls only change the level.
func Init(level, format string) error {
	if err := SetLevel(level); err != nil {
		return err
	}
	var initErr error
	once.Do(func() {
		var cfg zap.Config
		switch format {
		case "console", "":
			cfg = zap.NewDevelopmentConfig()
			cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
			cfg.DisableStacktrace = true
		case "json":
			cfg = zap.NewProductionConfig()
		default:
			initErr = fmt.Errorf("unknown log format %q (expected console or json)", format)
			return
		}
		cfg.Level = atomicLevel
		cfg.OutputPaths = []string{"stderr"}
		cfg.ErrorOutputPaths = []string{"stderr"}

		l, err := cfg.Build()
		if err != nil {
			initErr = fmt.Errorf("build logger: %w", err)
			return
		}
		Replace(l)
	})
	return initErr
}

// SetLevel changes the log level of the running logger.
func SetLevel(level string) error {
	if err := atomicLevel.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("parse log level %q: %w", level, err)
	}
	return nil
}

// Replace swaps the global logger and returns a function restoring the
// previous one.
func Replace(l *zap.Logger) func() {
	mu.Lock()
	prev := global
	global = l
	mu.Unlock()
	return func() {
		mu.Lock()
		global = prev
		mu.Unlock()
	}
}

// L returns the global logger. Before Init it discards everything.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

// Sync flushes any buffered log entries.
func Sync() error {
	return L().Sync()
}
