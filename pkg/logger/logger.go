package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogOption selects the output format, destination and level.
type LogOption struct {
	Format   string // "console" or "json"
	LogDir   string // empty logs to stderr only
	Level    string // debug / info / warn / error
	Compress bool   // compress rotated files
}

// New builds a zap logger from the option. File output rotates through
// lumberjack when LogDir is set.
func New(opt LogOption) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(defaultString(opt.Level, "info"))
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	switch defaultString(opt.Format, "console") {
	case "json":
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	case "console":
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	default:
		return nil, fmt.Errorf("unknown log format %q", opt.Format)
	}

	sink := zapcore.AddSync(os.Stderr)
	if opt.LogDir != "" {
		sink = zapcore.AddSync(&lumberjack.Logger{
			Filename:   filepath.Join(opt.LogDir, "proposal.log"),
			MaxSize:    100, // MB
			MaxBackups: 10,
			Compress:   opt.Compress,
		})
	}

	core := zapcore.NewCore(encoder, sink, level)
	return zap.New(core, zap.AddCaller()), nil
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
