package redaction

import (
	"context"
	"log/slog"

	"github.com/isseis/go-pam-env/internal/pamenv"
)

// Config controls how sensitive information is redacted
type Config struct {
	// Placeholder replaces redacted values
	Placeholder string
	// Patterns contains the sensitive patterns to detect
	Patterns *SensitivePatterns
}

// DefaultConfig returns default redaction configuration
func DefaultConfig() *Config {
	return &Config{
		Placeholder: "[REDACTED]",
		Patterns:    DefaultSensitivePatterns(),
	}
}

// maxRedactionDepth bounds recursion through nested groups and LogValuers.
const maxRedactionDepth = 10

// RedactionFailurePlaceholder is used when a value cannot be resolved safely
const RedactionFailurePlaceholder = "[REDACTION FAILED - OUTPUT SUPPRESSED]"

// RedactEnvValue returns value, or the placeholder when name is sensitive.
func (c *Config) RedactEnvValue(name, value string) string {
	if c.Patterns.IsSensitiveEnvVar(name) {
		return c.Placeholder
	}
	return value
}

// RedactPairs returns a copy of pairs with sensitive values replaced.
func (c *Config) RedactPairs(pairs []pamenv.TextPair) []pamenv.TextPair {
	out := make([]pamenv.TextPair, len(pairs))
	for i, p := range pairs {
		out[i] = pamenv.TextPair{Name: p.Name, Value: c.RedactEnvValue(p.Name, p.Value)}
	}
	return out
}

// RedactLogAttribute redacts sensitive information from a log attribute
func (c *Config) RedactLogAttribute(attr slog.Attr) slog.Attr {
	return c.redactAttr(attr, 0)
}

func (c *Config) redactAttr(attr slog.Attr, depth int) slog.Attr {
	key := attr.Key

	if c.Patterns.IsSensitiveKey(key) {
		return slog.String(key, c.Placeholder)
	}
	if depth >= maxRedactionDepth {
		return slog.String(key, RedactionFailurePlaceholder)
	}

	value := attr.Value
	if value.Kind() == slog.KindLogValuer {
		resolved, ok := resolveLogValuer(value)
		if !ok {
			return slog.String(key, RedactionFailurePlaceholder)
		}
		value = resolved
	}

	if value.Kind() == slog.KindGroup {
		groupAttrs := value.Group()
		redacted := make([]slog.Attr, 0, len(groupAttrs))
		for _, ga := range groupAttrs {
			redacted = append(redacted, c.redactAttr(ga, depth+1))
		}
		return slog.Attr{Key: key, Value: slog.GroupValue(redacted...)}
	}

	return slog.Attr{Key: key, Value: value}
}

// resolveLogValuer calls LogValue with panic recovery. It reports false when
// LogValue panicked.
func resolveLogValuer(v slog.Value) (resolved slog.Value, ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			ok = false
		}
	}()
	return v.LogValuer().LogValue(), true
}

// RedactingHandler is a decorator that redacts sensitive information before forwarding to the underlying handler
type RedactingHandler struct {
	handler slog.Handler
	config  *Config
}

// NewRedactingHandler creates a new redacting handler that wraps the given handler
func NewRedactingHandler(handler slog.Handler, config *Config) *RedactingHandler {
	if config == nil {
		config = DefaultConfig()
	}
	return &RedactingHandler{
		handler: handler,
		config:  config,
	}
}

// Enabled reports whether the handler handles records at the given level
func (r *RedactingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return r.handler.Enabled(ctx, level)
}

// Handler returns the underlying handler
func (r *RedactingHandler) Handler() slog.Handler {
	return r.handler
}

// Handle redacts the log record and forwards it to the underlying handler
func (r *RedactingHandler) Handle(ctx context.Context, record slog.Record) error {
	newRecord := slog.NewRecord(record.Time, record.Level, record.Message, record.PC)

	record.Attrs(func(attr slog.Attr) bool {
		newRecord.AddAttrs(r.config.RedactLogAttribute(attr))
		return true
	})

	return r.handler.Handle(ctx, newRecord)
}

// WithAttrs returns a new RedactingHandler with the given attributes
func (r *RedactingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	redactedAttrs := make([]slog.Attr, 0, len(attrs))
	for _, attr := range attrs {
		redactedAttrs = append(redactedAttrs, r.config.RedactLogAttribute(attr))
	}
	return &RedactingHandler{
		handler: r.handler.WithAttrs(redactedAttrs),
		config:  r.config,
	}
}

// WithGroup returns a new RedactingHandler with the given group name
func (r *RedactingHandler) WithGroup(name string) slog.Handler {
	return &RedactingHandler{
		handler: r.handler.WithGroup(name),
		config:  r.config,
	}
}
