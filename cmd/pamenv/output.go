package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"regexp"

	"github.com/isseis/go-pam-env/internal/config"
	"github.com/isseis/go-pam-env/internal/pamenv"
	"github.com/isseis/go-pam-env/internal/redaction"
	"github.com/kballard/go-shellquote"
)

// shellName matches names that can appear in a POSIX export statement.
var shellName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// outputWriter prints an environment snapshot in one of the output formats.
type outputWriter struct {
	w        io.Writer
	format   config.OutputFormat
	redactor *redaction.Config // nil disables redaction
	logger   *slog.Logger
}

func newOutputWriter(w io.Writer, format config.OutputFormat, redactor *redaction.Config, logger *slog.Logger) *outputWriter {
	return &outputWriter{w: w, format: format, redactor: redactor, logger: logger}
}

type jsonEntry struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Write prints list. The text format writes raw bytes; json and exec need
// every entry to be valid UTF-8 and fail otherwise.
func (o *outputWriter) Write(list *pamenv.EnvList) error {
	switch o.format {
	case config.OutputJSON:
		return o.writeJSON(list)
	case config.OutputExec:
		return o.writeExec(list)
	default:
		return o.writeText(list)
	}
}

func (o *outputWriter) writeText(list *pamenv.EnvList) error {
	for _, p := range list.Pairs() {
		value := p.Value
		if o.redactor != nil && o.redactor.Patterns.IsSensitiveEnvVar(string(p.Name)) {
			value = []byte(o.redactor.Placeholder)
		}
		line := make([]byte, 0, len(p.Name)+len(value)+2)
		line = append(line, p.Name...)
		line = append(line, '=')
		line = append(line, value...)
		line = append(line, '\n')
		if _, err := o.w.Write(line); err != nil {
			return err
		}
	}
	return nil
}

func (o *outputWriter) textPairs(list *pamenv.EnvList) ([]pamenv.TextPair, error) {
	pairs, err := list.TextPairs()
	if err != nil {
		return nil, err
	}
	if o.redactor != nil {
		pairs = o.redactor.RedactPairs(pairs)
	}
	return pairs, nil
}

func (o *outputWriter) writeJSON(list *pamenv.EnvList) error {
	pairs, err := o.textPairs(list)
	if err != nil {
		return err
	}
	entries := make([]jsonEntry, 0, len(pairs))
	for _, p := range pairs {
		entries = append(entries, jsonEntry{Name: p.Name, Value: p.Value})
	}
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

func (o *outputWriter) writeExec(list *pamenv.EnvList) error {
	pairs, err := o.textPairs(list)
	if err != nil {
		return err
	}
	for _, p := range pairs {
		if !shellName.MatchString(p.Name) {
			o.logger.Warn("Skipping variable whose name is not a shell identifier", "name", p.Name)
			continue
		}
		if _, err := fmt.Fprintf(o.w, "export %s=%s\n", p.Name, shellquote.Join(p.Value)); err != nil {
			return err
		}
	}
	return nil
}
