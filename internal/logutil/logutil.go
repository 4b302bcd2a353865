// Copyright 2025 Gustavo C. Viegas. All rights reserved.

// Package logutil provides the structured logger shared by the
// driver and engine packages.
package logutil

import (
	"os"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config describes logger output and verbosity.
// A zero Filename logs to stderr; otherwise output goes to a
// size-rotated file.
type Config struct {
	Level      string `toml:"level"`
	Filename   string `toml:"filename"`
	MaxSizeMB  int    `toml:"max-size"`
	MaxBackups int    `toml:"max-backups"`
	MaxAgeDays int    `toml:"max-age"`
}

var global atomic.Value

func init() { global.Store(newLogger(&Config{Level: "info"})) }

func newLogger(cfg *Config) *zap.Logger {
	level := zapcore.InfoLevel
	if cfg.Level != "" {
		// Unknown strings keep the info level.
		_ = level.UnmarshalText([]byte(cfg.Level))
	}
	var ws zapcore.WriteSyncer
	if cfg.Filename != "" {
		ws = zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.Filename,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
		})
	} else {
		ws = zapcore.Lock(os.Stderr)
	}
	enc := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), ws, level)
	return zap.New(core)
}

// Setup replaces the global logger according to cfg.
func Setup(cfg *Config) { global.Store(newLogger(cfg)) }

// Replace replaces the global logger with l.
// It is meant for tests that need to capture output.
func Replace(l *zap.Logger) { global.Store(l) }

// L returns the global logger.
func L() *zap.Logger { return global.Load().(*zap.Logger) }

// S returns the global sugared logger.
func S() *zap.SugaredLogger { return L().Sugar() }

// Infof logs at info level in printf style.
func Infof(format string, args ...any) { S().Infof(format, args...) }

// Warnf logs at warn level in printf style.
func Warnf(format string, args ...any) { S().Warnf(format, args...) }

// Fatalf logs at fatal level in printf style and terminates
// the process.
func Fatalf(format string, args ...any) { S().Fatalf(format, args...) }
