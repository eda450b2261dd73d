// Package logger holds the process-wide zap logger. SetupLogger installs it
// once from main; the package-level helpers are what call sites use.
package logger

import (
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var globalLogger = zap.NewNop()

// SetupLogger builds the logger for the given environment, installs it as the
// package global and returns it for direct use in main.
func SetupLogger(env string) *zap.Logger {
	var (
		l   *zap.Logger
		err error
	)
	switch env {
	case "local", "dev":
		cfg := zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		l, err = cfg.Build()
	default:
		l, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("cannot build logger: %s", err)
	}
	globalLogger = l
	return l
}

// Logger returns the installed logger, for middleware that wants the raw
// *zap.Logger.
func Logger() *zap.Logger {
	return globalLogger
}

func Debug(msg string, fields ...zap.Field) {
	globalLogger.Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	globalLogger.Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	globalLogger.Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	globalLogger.Error(msg, fields...)
}
