// Package logging builds the zap logger shared by the command and the
// converter.
package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options configures New.
type Options struct {
	// Level is one of "debug", "info", "warn", "error".
	Level string

	// File, when set, receives JSON lines at Level in addition to stderr.
	File string

	// Verbose forces the console to debug.
	Verbose bool

	// Quiet raises the console to warn while an interactive display owns
	// the terminal. The file sink keeps Level.
	Quiet bool
}

// New returns a logger writing human readable lines to stderr and,
// optionally, JSON lines to a file. The returned cleanup flushes and closes
// the sinks.
func New(opts Options) (*zap.Logger, func(), error) {
	level, err := zapcore.ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
	}

	consoleLevel := level
	if opts.Verbose {
		consoleLevel = zapcore.DebugLevel
	}
	if opts.Quiet && consoleLevel < zapcore.WarnLevel {
		consoleLevel = zapcore.WarnLevel
	}

	consoleEncoder := zap.NewDevelopmentEncoderConfig()
	consoleEncoder.EncodeLevel = zapcore.CapitalLevelEncoder
	consoleEncoder.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleEncoder), zapcore.Lock(os.Stderr), consoleLevel),
	}

	closeFile := func() {}
	if opts.File != "" {
		sink, closeSink, err := zap.Open(opts.File)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		closeFile = closeSink
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), sink, level))
	}

	logger := zap.New(zapcore.NewTee(cores...))
	cleanup := func() {
		_ = logger.Sync()
		closeFile()
	}
	return logger, cleanup, nil
}
