package config

import (
	"articlelike/global"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds a zap logger at the given level. Unknown levels fall back to info.
func NewLogger(level string, development bool) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

func initLogger() error {
	logger, err := NewLogger(AppConfig.Log.Level, AppConfig.Log.Development)
	if err != nil {
		return err
	}
	global.Logger = logger
	return nil
}
