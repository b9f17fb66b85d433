package logger

import (
	"context"
	"unicode/utf8"
)

type contextKey string

const logFieldsKey contextKey = "apiforge/logger/fields"

// LogFields are attached to every log line emitted with the enriched context.
type LogFields struct {
	Component string // e.g. "apiforge.pipeline"
	Pipeline  string // "generate" or "publish"
	AgentID   string // remote agent currently addressed
}

// WithLogFields merges fields into ctx; non-empty new values win.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	merged := GetLogFields(ctx)
	if fields.Component != "" {
		merged.Component = fields.Component
	}
	if fields.Pipeline != "" {
		merged.Pipeline = fields.Pipeline
	}
	if fields.AgentID != "" {
		merged.AgentID = fields.AgentID
	}
	return context.WithValue(ctx, logFieldsKey, merged)
}

func GetLogFields(ctx context.Context) LogFields {
	if ctx == nil {
		return LogFields{}
	}
	if fields, ok := ctx.Value(logFieldsKey).(LogFields); ok {
		return fields
	}
	return LogFields{}
}

// Truncate shortens s for logging, appending "..." when cut.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := max(maxLen, 0)
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
