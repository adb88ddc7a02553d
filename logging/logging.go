// Package logging builds the zap logger used across spritewalk.
package logging

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options selects the level and sinks of the logger.
type Options struct {
	Level zapcore.Level
	// File, when set, receives a copy of every entry and rolls at 10MB.
	File string
	// Console overrides the terminal sink. Defaults to stderr.
	Console io.Writer
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:       "ts",
		LevelKey:      "level",
		NameKey:       "logger",
		CallerKey:     "caller",
		MessageKey:    "msg",
		StacktraceKey: "stack",
		LineEnding:    zapcore.DefaultLineEnding,
		EncodeLevel:   zapcore.CapitalLevelEncoder,
		EncodeTime:    zapcore.ISO8601TimeEncoder,
		EncodeCaller:  zapcore.ShortCallerEncoder,
	}
}

// New returns a SugaredLogger and a function that flushes and closes its
// sinks.
func New(opts Options) (*zap.SugaredLogger, func()) {
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	enc := zapcore.NewConsoleEncoder(encoderConfig())
	cores := []zapcore.Core{
		zapcore.NewCore(enc, zapcore.AddSync(console), opts.Level),
	}

	var roll *lumberjack.Logger
	if opts.File != "" {
		roll = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10, // MB
			MaxBackups: 3,
			MaxAge:     7, // days
		}
		cores = append(cores, zapcore.NewCore(enc.Clone(), zapcore.AddSync(roll), opts.Level))
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	sugar := logger.Sugar()

	return sugar, func() {
		_ = sugar.Sync()
		if roll != nil {
			_ = roll.Close()
		}
	}
}

// Nop returns a logger that discards everything.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
