// Package logger provides pipeline logging for the joss CLI.
// When verbose mode is enabled via the --verbose flag, messages are
// printed to stderr. When file logging is set up, every message is also
// written at DEBUG level to a timestamped JSON-lines log file.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
	file    *zap.SugaredLogger
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for verbose logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// SetupFileLogging attaches a DEBUG-level file sink named
// <prefix>_<timestamp>.log inside dir and returns its path.
// A previously attached sink is flushed and replaced.
func SetupFileLogging(dir, prefix string, timestamp int64) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating log directory: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_%d.log", prefix, timestamp))

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.Sampling = nil
	cfg.DisableStacktrace = true

	l, err := cfg.Build()
	if err != nil {
		return "", fmt.Errorf("building file logger: %w", err)
	}

	mu.Lock()
	prev := file
	file = l.Sugar().Named(prefix)
	mu.Unlock()

	if prev != nil {
		_ = prev.Sync()
	}
	Info("Logging to file: %s", path)
	return path, nil
}

// Sync flushes the file sink, if any.
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	if file != nil {
		_ = file.Sync()
	}
}

// CloseFile flushes and detaches the file sink.
func CloseFile() {
	mu.Lock()
	defer mu.Unlock()
	if file != nil {
		_ = file.Sync()
		file = nil
	}
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	emit(zapcore.DebugLevel, "[DEBUG] ", format, args)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
	if file != nil {
		file.Debugf("=== %s ===", name)
	}
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	emit(zapcore.InfoLevel, "[INFO] ", format, args)
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) {
	emit(zapcore.WarnLevel, "[WARN] ", format, args)
}

// Error prints an error message if verbose mode is enabled.
func Error(format string, args ...any) {
	emit(zapcore.ErrorLevel, "[ERROR] ", format, args)
}

func emit(level zapcore.Level, prefix, format string, args []any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, prefix+format+"\n", args...)
	}
	if file == nil {
		return
	}
	switch level {
	case zapcore.DebugLevel:
		file.Debugf(format, args...)
	case zapcore.WarnLevel:
		file.Warnf(format, args...)
	case zapcore.ErrorLevel:
		file.Errorf(format, args...)
	default:
		file.Infof(format, args...)
	}
}
