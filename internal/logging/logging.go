// Package logging builds the zap logger shared by both binaries.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jorge-barreto/opencode-inline/internal/config"
)

// Environment variables that configure logging when flags are absent.
const (
	EnvLog   = config.EnvPrefix + "LOG"
	EnvDebug = config.EnvPrefix + "DEBUG"
)

// Options selects where log records go.
type Options struct {
	Path    string // log file; empty disables logging
	Verbose bool   // debug level instead of info
}

// FromEnv fills unset fields of o from the environment.
func (o Options) FromEnv(getenv func(string) string) Options {
	if o.Path == "" {
		o.Path = getenv(EnvLog)
	}
	if !o.Verbose {
		o.Verbose = getenv(EnvDebug) == "1"
	}
	return o
}

// New returns a JSON file logger, or a no-op logger when no path is set.
// Logs never go to stdout, which carries replacement payloads.
func New(o Options) (*zap.Logger, error) {
	if o.Path == "" {
		return zap.NewNop(), nil
	}
	if err := os.MkdirAll(filepath.Dir(o.Path), 0755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}

	cfg := zap.NewProductionConfig()
	if o.Verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	cfg.OutputPaths = []string{o.Path}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Sampling = nil

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
