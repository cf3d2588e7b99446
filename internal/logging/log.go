// Package logging provides the structured logger capability used across the
// compilation pipeline. Callers inject a Logger at construction; nothing in
// this module reaches for a package-level singleton.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the capability every pipeline component accepts at construction.
type Logger interface {
	Debug(msg string, fields map[string]any)
	Info(msg string, fields map[string]any)
	Warn(msg string, fields map[string]any)
	Error(msg string, fields map[string]any)
}

// New builds a zap-backed Logger. dev selects the human-readable console
// encoder; production builds use the JSON encoder.
func New(dev bool) Logger {
	var cfg zap.Config
	if dev {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.MessageKey = "msg"
	cfg.EncoderConfig.LevelKey = "level"

	base, err := cfg.Build()
	if err != nil {
		return NewNop()
	}
	return &zapLogger{base: base}
}

type zapLogger struct {
	base *zap.Logger
}

func (l *zapLogger) Debug(msg string, fields map[string]any) { l.base.With(zapFields(fields)...).Debug(msg) }
func (l *zapLogger) Info(msg string, fields map[string]any)  { l.base.With(zapFields(fields)...).Info(msg) }
func (l *zapLogger) Warn(msg string, fields map[string]any)  { l.base.With(zapFields(fields)...).Warn(msg) }
func (l *zapLogger) Error(msg string, fields map[string]any) { l.base.With(zapFields(fields)...).Error(msg) }

func zapFields(m map[string]any) []zap.Field {
	fields := make([]zap.Field, 0, len(m))
	for k, v := range m {
		fields = append(fields, zap.Any(k, v))
	}
	return fields
}

// nopLogger discards everything; it is the default when a caller passes nil.
type nopLogger struct{}

func (nopLogger) Debug(string, map[string]any) {}
func (nopLogger) Info(string, map[string]any)  {}
func (nopLogger) Warn(string, map[string]any)  {}
func (nopLogger) Error(string, map[string]any) {}

// NewNop returns a Logger that discards all messages.
func NewNop() Logger { return nopLogger{} }

// OrNop returns l if non-nil, otherwise a no-op logger. Components use this
// so construction never needs a nil check at every call site.
func OrNop(l Logger) Logger {
	if l == nil {
		return NewNop()
	}
	return l
}
