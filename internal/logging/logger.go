// Package logging builds the zap logger used across the pipeline and
// provides redaction helpers for evidence text in debug output.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/fyrsmithlabs/suggestd/internal/config"
)

// New creates a zap logger from the logging config section.
func New(cfg config.Logging) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.Encoding = cfg.Format
	zcfg.EncoderConfig.TimeKey = "ts"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

// Redactor truncates user note text before it reaches logs or the debug
// ledger. MaxChars <= 0 disables truncation.
type Redactor struct {
	MaxChars int
}

// NewRedactor creates a redactor from config.
func NewRedactor(cfg config.Logging) Redactor {
	return Redactor{MaxChars: cfg.RedactMaxChars}
}

// Redact returns text truncated to MaxChars with an ellipsis marker.
func (r Redactor) Redact(text string) string {
	if r.MaxChars <= 0 || len(text) <= r.MaxChars {
		return text
	}
	return text[:r.MaxChars] + "..."
}

// RedactAll redacts a slice of texts.
func (r Redactor) RedactAll(texts []string) []string {
	if len(texts) == 0 {
		return nil
	}
	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = r.Redact(t)
	}
	return out
}
