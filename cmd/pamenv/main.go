// Package main provides the pamenv command. It opens a PAM transaction,
// reads the environment list that PAM modules exported for it, and prints
// the snapshot.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/isseis/go-pam-env/internal/config"
	"github.com/isseis/go-pam-env/internal/logging"
	"github.com/isseis/go-pam-env/internal/pam"
	"github.com/isseis/go-pam-env/internal/pamenv"
	"github.com/isseis/go-pam-env/internal/redaction"
)

// Exit codes
const (
	exitOK            = 0
	exitError         = 1
	exitNoEnvironment = 2
)

// Error definitions
var (
	ErrNoEnvironment = errors.New("PAM returned no environment list")
)

// transaction is the subset of *pam.Transaction used by run.
type transaction interface {
	pamenv.Session
	PutEnv(name, value string) error
	SetCred(flag pam.CredFlag) error
	OpenSession() error
	CloseSession() error
	End() error
}

// startTransaction is replaced in tests.
var startTransaction = func(service, user string) (transaction, error) {
	tx, err := pam.Start(service, user)
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// stringList collects repeated -set flags.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// options holds parsed command-line flags.
type options struct {
	configPath    string
	service       string
	user          string
	openSession   bool
	establishCred bool
	set           stringList
	format        string
	redact        bool
	logLevel      string
	logFormat     string
	logFile       string
	runID         string
	visited       map[string]bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet(filepath.Base(os.Args[0]), flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.configPath, "config", "", "path to config file (.toml, .yaml or .yml)")
	fs.StringVar(&opts.service, "service", "", "PAM service name (default: "+config.DefaultService+")")
	fs.StringVar(&opts.user, "user", "", "user name passed to pam_start")
	fs.BoolVar(&opts.openSession, "open-session", false, "call pam_open_session before reading the environment")
	fs.BoolVar(&opts.establishCred, "establish-cred", false, "call pam_setcred(PAM_ESTABLISH_CRED) before reading the environment")
	fs.Var(&opts.set, "set", "NAME=VALUE to put into the PAM environment before reading it (repeatable)")
	fs.StringVar(&opts.format, "format", "", "output format (text, json, exec)")
	fs.BoolVar(&opts.redact, "redact", true, "replace values of sensitive variables with a placeholder")
	fs.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	fs.StringVar(&opts.logFormat, "log-format", "", "log format (auto, text, json)")
	fs.StringVar(&opts.logFile, "log-file", "", "also write JSON log records to this file")
	fs.StringVar(&opts.runID, "run-id", "", "unique identifier for this run (auto-generates ULID if not provided)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	opts.visited = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { opts.visited[f.Name] = true })
	return opts, nil
}

// loadConfig reads the config file, if any, and applies flag overrides.
func loadConfig(opts *options) (*config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if opts.visited["service"] {
		cfg.Service = opts.service
	}
	if opts.visited["user"] {
		cfg.User = opts.user
	}
	if opts.visited["open-session"] {
		cfg.OpenSession = opts.openSession
	}
	if opts.visited["establish-cred"] {
		cfg.EstablishCred = opts.establishCred
	}
	cfg.Env = append(cfg.Env, opts.set...)
	if opts.visited["format"] {
		cfg.Output.Format = config.OutputFormat(opts.format)
	}
	if opts.visited["redact"] {
		cfg.Output.Redact = opts.redact
	}
	if opts.visited["log-level"] {
		cfg.Log.Level = opts.logLevel
	}
	if opts.visited["log-format"] {
		cfg.Log.Format = opts.logFormat
	}
	if opts.visited["log-file"] {
		cfg.Log.File = opts.logFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the logger and returns a function closing the log file,
// if one was configured.
func newLogger(cfg *config.Config, runID string, stderr io.Writer) (*slog.Logger, func(), error) {
	// Both values were checked by cfg.Validate.
	level, _ := logging.ParseLevel(cfg.Log.Level)
	format, _ := logging.ParseFormat(cfg.Log.Format)
	logConfig := logging.Config{
		Level:  level,
		Format: format,
		RunID:  runID,
		Writer: stderr,
	}

	closeFile := func() {}
	if cfg.Log.File != "" {
		f, err := logging.OpenLogFile(cfg.Log.File)
		if err != nil {
			return nil, nil, err
		}
		logConfig.FileWriter = f
		closeFile = func() {
			if err := f.Close(); err != nil {
				fmt.Fprintf(stderr, "Warning: failed to close log file: %v\n", err)
			}
		}
	}
	return logging.NewLogger(logConfig), closeFile, nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	runID := opts.runID
	if runID == "" {
		runID = logging.GenerateRunID()
	}
	logger, closeLog, err := newLogger(cfg, runID, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	defer closeLog()

	list, err := snapshot(cfg, logger)
	if errors.Is(err, ErrNoEnvironment) {
		logger.Warn("No environment list available", "service", cfg.Service)
		return exitNoEnvironment
	}
	if err != nil {
		logger.Error("Failed to read PAM environment", "service", cfg.Service, "error", err)
		return exitError
	}

	var redactor *redaction.Config
	if cfg.Output.Redact {
		redactor = redaction.DefaultConfig()
	}
	w := newOutputWriter(stdout, cfg.Output.Format, redactor, logger)
	if err := w.Write(list); err != nil {
		logger.Error("Failed to write environment", "format", cfg.Output.Format, "error", err)
		return exitError
	}
	return exitOK
}

// snapshot runs the configured PAM steps and returns the environment list.
func snapshot(cfg *config.Config, logger *slog.Logger) (list *pamenv.EnvList, err error) {
	entries, err := cfg.EnvEntries()
	if err != nil {
		return nil, err
	}

	tx, err := startTransaction(cfg.Service, cfg.User)
	if err != nil {
		return nil, fmt.Errorf("failed to start PAM transaction: %w", err)
	}
	defer func() {
		if endErr := tx.End(); endErr != nil && err == nil {
			err = fmt.Errorf("failed to end PAM transaction: %w", endErr)
		}
	}()
	logger.Debug("Started PAM transaction", "service", cfg.Service, "user", cfg.User)

	for _, e := range entries {
		if err := tx.PutEnv(e.Name, e.Value); err != nil {
			return nil, fmt.Errorf("failed to set %s: %w", e.Name, err)
		}
	}

	if cfg.EstablishCred {
		if err := tx.SetCred(pam.EstablishCred); err != nil {
			return nil, fmt.Errorf("failed to establish credentials: %w", err)
		}
		defer func() {
			if delErr := tx.SetCred(pam.DeleteCred); delErr != nil {
				logger.Warn("Failed to delete credentials", "error", delErr)
			}
		}()
	}

	if cfg.OpenSession {
		if err := tx.OpenSession(); err != nil {
			return nil, fmt.Errorf("failed to open session: %w", err)
		}
		defer func() {
			if closeErr := tx.CloseSession(); closeErr != nil {
				logger.Warn("Failed to close session", "error", closeErr)
			}
		}()
	}

	fetcher := pamenv.NewFetcher(pam.DefaultReleaser(), pamenv.WithLogger(logger))
	list, ok := fetcher.Fetch(tx)
	if !ok {
		return nil, ErrNoEnvironment
	}
	logger.Info("Read PAM environment", "service", cfg.Service, "env", list)
	return list, nil
}
