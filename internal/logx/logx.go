// Package logx builds the application logger. The TUI owns stdout, so logs
// go to a file or nowhere.
package logx

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects the log destination and level.
type Options struct {
	File    string // empty disables logging
	Level   string // debug, info, warn, error
	Verbose bool   // forces debug
	Stderr  bool   // also log to stderr (serve mode has no TUI locally)
}

// New builds a JSON file logger, or a no-op logger when both File is empty
// and Stderr is false.
func New(opts Options) (*zap.Logger, error) {
	if opts.File == "" && !opts.Stderr {
		return zap.NewNop(), nil
	}

	config := zap.NewProductionConfig()
	config.OutputPaths = nil
	config.ErrorOutputPaths = nil
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		config.OutputPaths = append(config.OutputPaths, opts.File)
		config.ErrorOutputPaths = append(config.ErrorOutputPaths, opts.File)
	}
	if opts.Stderr {
		config.OutputPaths = append(config.OutputPaths, "stderr")
		config.ErrorOutputPaths = append(config.ErrorOutputPaths, "stderr")
	}

	if opts.Level != "" {
		level, err := zap.ParseAtomicLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		config.Level = level
	}
	if opts.Verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	config.EncoderConfig.TimeKey = "ts"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
