// Package logger configures the structured logger shared by every
// subsystem in this module. It wraps zap so that callers only ever see a
// *zap.SugaredLogger, regardless of which encoder is active underneath.
package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a production-grade logger tagged with the given service name.
// The encoder defaults to JSON; setting RDB_LOG_FORMAT=console switches to
// zap's human-readable console encoder, which is handy when running
// cmd/rdbctl interactively.
func New(service string) *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if strings.EqualFold(os.Getenv("RDB_LOG_FORMAT"), "console") {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	base, err := cfg.Build()
	if err != nil {
		// zap.NewProductionConfig/NewDevelopmentConfig only fail to build on
		// a misconfigured Config literal; this one is ours and is static,
		// so fall back to a logger that still works rather than panicking.
		base = zap.NewNop()
	}

	return base.Sugar().With("service", service)
}

// Nop returns a logger that discards everything, for tests that don't care
// about log output.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
