// Package obslog builds the process-wide structured logger. The
// resulting *zap.Logger is constructed once and passed explicitly
// into every component's constructor — never stashed in a package
// global, per the anti-global-state design note.
package obslog

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a zap logger appropriate for appEnv ("development",
// "staging", "production"). Production and staging get the JSON
// production config; anything else (including empty) gets the
// human-readable development config, mirroring the teacher's
// initLogger().
func New(appEnv string) (*zap.Logger, error) {
	var cfg zap.Config
	switch appEnv {
	case "production", "staging":
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "ts"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	default:
		cfg = zap.NewDevelopmentConfig()
	}
	return cfg.Build()
}
