// Package config holds runtime settings and sets up log output.
package config

import (
	"errors"
	"fmt"
	"io"
	stdlog "log"
	"net/url"
	"os"
	"path/filepath"

	"github.com/hammamikhairi/doughcalc/internal/logger"
)

// Environment variables read by the command line flags.
const (
	EnvLogLevel = "DOUGHCALC_LOG_LEVEL"
	EnvLogFile  = "DOUGHCALC_LOG_FILE"
	EnvBaseURL  = "DOUGHCALC_BASE_URL"
)

const (
	// DefaultLogFile keeps logs out of the terminal UI.
	DefaultLogFile = ".doughcalc/doughcalc.log"
	// DefaultBaseURL is the page share links point at.
	DefaultBaseURL = "http://localhost:3000/"
	// StderrLog selects the console as log output.
	StderrLog = "stderr"
)

// Config is the runtime configuration.
type Config struct {
	LogLevel string
	LogFile  string
	BaseURL  string
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		LogLevel: logger.LevelNormal.String(),
		LogFile:  DefaultLogFile,
		BaseURL:  DefaultBaseURL,
	}
}

// Validate checks the log level and the share base URL.
func (c Config) Validate() error {
	var errs []error
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	u, err := url.Parse(c.BaseURL)
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("base url: %w", err))
	case u.Scheme == "" || u.Host == "":
		errs = append(errs, fmt.Errorf("base url %q: scheme and host required", c.BaseURL))
	}
	return errors.Join(errs...)
}

// OpenLog opens the log destination. Logs go to a file by default so the
// terminal UI stays clean; an empty path or "stderr" selects the console.
// When the file cannot be opened a warning goes to fallback, which is then
// used as the output. The returned func closes the file, if any.
func (c Config) OpenLog(fallback io.Writer) (io.Writer, func() error) {
	noop := func() error { return nil }
	if c.LogFile == "" || c.LogFile == StderrLog {
		return fallback, noop
	}

	if dir := filepath.Dir(c.LogFile); dir != "" && dir != "." {
		_ = os.MkdirAll(dir, 0o755)
	}
	f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(fallback, "warning: could not open log file %s: %v (falling back to stderr)\n", c.LogFile, err)
		return fallback, noop
	}
	return f, f.Close
}

// Logger builds the leveled logger on the configured output. The standard
// library logger is pointed at the same output so third-party packages
// don't write over the terminal.
func (c Config) Logger() (*logger.Logger, func() error, error) {
	level, err := logger.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	out, closeLog := c.OpenLog(os.Stderr)
	stdlog.SetOutput(out)
	stdlog.SetFlags(stdlog.Ltime)

	return logger.New(level, out), closeLog, nil
}
