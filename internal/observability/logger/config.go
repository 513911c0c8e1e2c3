package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config configures the logger.
type Config struct {
	// Env selects the encoder: "prod" writes JSON, anything else a colored console.
	Env string

	// Level is the minimum level: debug, info, warn, error. Default info.
	Level string

	// ServiceName and Version are attached to every entry when set.
	ServiceName string
	Version     string
}

func build(cfg Config) *zap.Logger {
	level := parseLevel(cfg.Level)

	var (
		l   *zap.Logger
		err error
	)
	if strings.EqualFold(cfg.Env, "prod") {
		l, err = buildProd(level)
	} else {
		l, err = buildDev(level)
	}
	if err != nil {
		l, _ = zap.NewProduction()
	}

	if cfg.ServiceName != "" {
		l = l.With(zap.String("service", cfg.ServiceName))
	}
	if cfg.Version != "" {
		l = l.With(zap.String("version", cfg.Version))
	}
	return l
}

func buildDev(level zapcore.Level) (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	zcfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	zcfg.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	zcfg.DisableStacktrace = true

	return zcfg.Build(zap.AddCaller())
}

func buildProd(level zapcore.Level) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zcfg.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	return zcfg.Build(zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
}

func parseLevel(lvl string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
