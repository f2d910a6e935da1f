// Package config loads the pamenv configuration file. TOML and YAML files
// are accepted; command-line flags override file values.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/isseis/go-pam-env/internal/logging"
)

// OutputFormat selects how the environment list is printed.
type OutputFormat string

const (
	// OutputText prints NAME=VALUE lines
	OutputText OutputFormat = "text"
	// OutputJSON prints a JSON array of {"name","value"} objects
	OutputJSON OutputFormat = "json"
	// OutputExec prints shell-quoted export statements
	OutputExec OutputFormat = "exec"
)

// DefaultService is used when neither the file nor the flags name a service.
const DefaultService = "login"

// Error definitions
var (
	ErrEmptyService        = errors.New("service cannot be empty")
	ErrInvalidOutputFormat = errors.New("invalid output format")
	ErrInvalidEnvEntry     = errors.New("invalid env entry")
	ErrUnsupportedFormat   = errors.New("unsupported config file format")
)

// Config is the complete pamenv configuration.
type Config struct {
	Service       string       `toml:"service" yaml:"service"`
	User          string       `toml:"user" yaml:"user"`
	OpenSession   bool         `toml:"open_session" yaml:"open_session"`
	EstablishCred bool         `toml:"establish_cred" yaml:"establish_cred"`
	Env           []string     `toml:"env" yaml:"env"`
	Output        OutputConfig `toml:"output" yaml:"output"`
	Log           LogConfig    `toml:"log" yaml:"log"`
}

// OutputConfig controls how the snapshot is printed.
type OutputConfig struct {
	Format OutputFormat `toml:"format" yaml:"format"`
	Redact bool         `toml:"redact" yaml:"redact"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
	// File, when set, receives a JSON copy of every log record.
	File string `toml:"file" yaml:"file"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Service: DefaultService,
		Output: OutputConfig{
			Format: OutputText,
			Redact: true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: string(logging.FormatAuto),
		},
	}
}

// EnvEntry is a seed variable parsed from Config.Env.
type EnvEntry struct {
	Name  string
	Value string
}

// ParseEnvEntry parses a NAME=VALUE seed entry. The name must be non-empty.
func ParseEnvEntry(entry string) (EnvEntry, error) {
	name, value, found := strings.Cut(entry, "=")
	if !found || name == "" {
		return EnvEntry{}, fmt.Errorf("%w: %q (expected NAME=VALUE)", ErrInvalidEnvEntry, entry)
	}
	return EnvEntry{Name: name, Value: value}, nil
}

// EnvEntries returns the parsed seed entries in order.
func (c *Config) EnvEntries() ([]EnvEntry, error) {
	entries := make([]EnvEntry, 0, len(c.Env))
	for _, e := range c.Env {
		entry, err := ParseEnvEntry(e)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Service) == "" {
		return ErrEmptyService
	}

	switch c.Output.Format {
	case OutputText, OutputJSON, OutputExec:
	default:
		return fmt.Errorf("%w: %q (must be one of: text, json, exec)", ErrInvalidOutputFormat, c.Output.Format)
	}

	if _, err := c.EnvEntries(); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if _, err := logging.ParseFormat(c.Log.Format); err != nil {
		return err
	}
	return nil
}
