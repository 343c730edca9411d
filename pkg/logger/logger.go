package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger provides a structured logging interface
type Logger struct {
	*zap.SugaredLogger
}

// Options controls where and how verbosely a Logger writes.
type Options struct {
	Dir     string
	Level   zapcore.Level
	Console bool
}

// DefaultOptions writes Info and above to ./logs and stdout.
func DefaultOptions() Options {
	return Options{Dir: "logs", Level: zap.InfoLevel, Console: true}
}

// New creates a new logger with the given name
func New(name string) *Logger {
	return NewWithOptions(name, DefaultOptions())
}

// NewWithOptions creates a named logger that tees a daily JSON file with an optional console core.
func NewWithOptions(name string, opts Options) *Logger {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var cores []zapcore.Core

	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0755); err != nil {
			fmt.Printf("Error creating logs directory: %v\n", err)
		}

		timestamp := time.Now().Format("20060102")
		logFile := filepath.Join(opts.Dir, fmt.Sprintf("%s_%s.log", name, timestamp))

		fileWriter, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			fmt.Printf("Error opening log file: %v\n", err)
		} else {
			cores = append(cores, zapcore.NewCore(
				zapcore.NewJSONEncoder(encoderConfig),
				zapcore.AddSync(fileWriter),
				opts.Level,
			))
		}
	}

	if opts.Console {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig),
			zapcore.AddSync(os.Stdout),
			opts.Level,
		))
	}

	logger := zap.New(zapcore.NewTee(cores...)).Named(name)

	return &Logger{
		SugaredLogger: logger.Sugar(),
	}
}

// Nop returns a logger that discards everything; handy in tests.
func Nop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}
