// Package logging builds the slog logger used by the pamenv command.
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/isseis/go-pam-env/internal/redaction"
	"github.com/isseis/go-pam-env/internal/terminal"
	"github.com/oklog/ulid/v2"
)

// Format selects the handler used for log records.
type Format string

const (
	// FormatAuto picks text on interactive terminals and JSON otherwise
	FormatAuto Format = "auto"
	// FormatText writes logfmt-style text records
	FormatText Format = "text"
	// FormatJSON writes one JSON object per record
	FormatJSON Format = "json"
)

// Error definitions
var (
	ErrInvalidLogLevel  = errors.New("invalid log level")
	ErrInvalidLogFormat = errors.New("invalid log format")
)

// Config holds all configuration for logger setup
type Config struct {
	Level      slog.Level
	Format     Format
	RunID      string
	Writer     io.Writer // defaults to os.Stderr
	FileWriter io.Writer // when set, also receives every record as JSON
	Redaction  *redaction.Config
	Detector   terminal.InteractiveDetector
}

// ParseLevel converts "debug", "info", "warn" or "error" to a slog.Level.
// An empty string yields info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: %q (must be one of: debug, info, warn, error)", ErrInvalidLogLevel, s)
	}
}

// ParseFormat validates a log format name. An empty string yields FormatAuto.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatAuto, nil
	case FormatAuto, FormatText, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q (must be one of: auto, text, json)", ErrInvalidLogFormat, s)
	}
}

// GenerateRunID returns a new ULID identifying one invocation.
func GenerateRunID() string {
	return ulid.Make().String()
}

// NewLogger builds a logger whose records pass through a redacting handler
// and carry the run_id attribute. With a FileWriter, records go to both the
// console handler and a JSON file handler.
func NewLogger(config Config) *slog.Logger {
	w := config.Writer
	if w == nil {
		w = os.Stderr
	}

	format := config.Format
	if format == FormatAuto || format == "" {
		detector := config.Detector
		if detector == nil {
			detector = terminal.NewInteractiveDetector(terminal.DetectorOptions{})
		}
		format = FormatJSON
		if detector.IsInteractive() {
			format = FormatText
		}
	}

	opts := &slog.HandlerOptions{Level: config.Level}
	var handler slog.Handler
	if format == FormatJSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	if config.FileWriter != nil {
		handler = NewMultiHandler(handler, slog.NewJSONHandler(config.FileWriter, opts))
	}

	logger := slog.New(redaction.NewRedactingHandler(handler, config.Redaction))
	if config.RunID != "" {
		logger = logger.With("run_id", config.RunID)
	}
	return logger
}
