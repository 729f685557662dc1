// Package logging builds the zap loggers used by the CLI and the HTTP server.
package logging

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Structured field keys shared across components.
const (
	FieldProvider  = "llm_provider"
	FieldModel     = "llm_model"
	FieldRequestID = "request_id"
)

// DefaultPreviewLength bounds model output written to logs.
const DefaultPreviewLength = 500

// New builds a logger writing to stderr, keeping stdout free for command output.
func New(json bool, debug bool) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	encoding := "console"

	if json {
		encoding = "json"
	}
	if debug {
		level = zapcore.DebugLevel
	}

	cfg := zap.Config{
		Encoding:         encoding,
		Level:            zap.NewAtomicLevelAt(level),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey: "msg",

			LevelKey:    "level",
			EncodeLevel: zapcore.LowercaseLevelEncoder,

			TimeKey:    "time",
			EncodeTime: zapcore.RFC3339TimeEncoder,

			CallerKey:    "caller",
			EncodeCaller: zapcore.ShortCallerEncoder,
		},
	}
	return cfg.Build()
}

// OrNop returns logger, or a no-op logger when it is nil.
func OrNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

// LLMFields describes the provider and model of a completion call.
// Empty values are omitted.
func LLMFields(provider, model string) []zap.Field {
	fields := make([]zap.Field, 0, 2)
	if p := strings.TrimSpace(provider); p != "" {
		fields = append(fields, zap.String(FieldProvider, p))
	}
	if m := strings.TrimSpace(model); m != "" {
		fields = append(fields, zap.String(FieldModel, m))
	}
	return fields
}

// TruncateForLog shortens s to limit runes, appending an ellipsis when truncated.
func TruncateForLog(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
