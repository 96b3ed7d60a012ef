// Package logger is the process-wide structured logger.
package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Options struct {
	Environment string
	Level       string
	// File enables a rotated log file next to stdout when non-empty.
	File string
}

var (
	mu  sync.RWMutex
	log = zap.NewNop().Sugar()
)

// Init configures the global logger for the given environment.
func Init(env string) {
	InitWithOptions(Options{Environment: env, Level: "info"})
}

func InitWithOptions(opt Options) {
	l := build(opt)

	mu.Lock()
	log = l.Sugar()
	mu.Unlock()
}

func build(opt Options) *zap.Logger {
	var lvl zapcore.Level
	if err := lvl.Set(opt.Level); err != nil {
		lvl = zapcore.InfoLevel
	}

	production := opt.Environment == "production"

	var enc zapcore.Encoder
	if production {
		cfg := zap.NewProductionEncoderConfig()
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.TimeKey = "ts"
		cfg.EncodeCaller = zapcore.ShortCallerEncoder
		enc = zapcore.NewJSONEncoder(cfg)
	} else {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000")
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.EncodeCaller = zapcore.ShortCallerEncoder
		enc = zapcore.NewConsoleEncoder(cfg)
	}

	cores := []zapcore.Core{
		zapcore.NewCore(enc, zapcore.AddSync(os.Stdout), lvl),
	}

	if opt.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   opt.File,
			MaxSize:    100,
			MaxBackups: 5,
			MaxAge:     28,
			Compress:   true,
		}
		cores = append(cores, zapcore.NewCore(enc, zapcore.AddSync(rotator), lvl))
	}

	opts := []zap.Option{zap.AddCaller(), zap.AddCallerSkip(1)}
	if !production {
		opts = append(opts, zap.Development())
	}

	return zap.New(zapcore.NewTee(cores...), opts...)
}

// Replace swaps the global logger and returns a func that restores the previous one.
func Replace(l *zap.Logger) func() {
	mu.Lock()
	prev := log
	log = l.Sugar()
	mu.Unlock()

	return func() {
		mu.Lock()
		log = prev
		mu.Unlock()
	}
}

func current() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

func Debug(msg string, keysAndValues ...any) { current().Debugw(msg, keysAndValues...) }

func Info(msg string, keysAndValues ...any) { current().Infow(msg, keysAndValues...) }

func Warn(msg string, keysAndValues ...any) { current().Warnw(msg, keysAndValues...) }

func Error(msg string, keysAndValues ...any) { current().Errorw(msg, keysAndValues...) }

// Fatal logs and exits the process.
func Fatal(msg string, keysAndValues ...any) { current().Fatalw(msg, keysAndValues...) }

// Sync flushes buffered entries; call it before exit.
func Sync() error {
	return current().Sync()
}
