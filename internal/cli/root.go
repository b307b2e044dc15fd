package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/hammamikhairi/doughcalc/internal/config"
	"github.com/hammamikhairi/doughcalc/internal/display"
	"github.com/hammamikhairi/doughcalc/internal/domain"
	"github.com/hammamikhairi/doughcalc/internal/engine"
	"github.com/hammamikhairi/doughcalc/internal/export"
	"github.com/hammamikhairi/doughcalc/internal/logger"
	"github.com/hammamikhairi/doughcalc/internal/preset"
	"github.com/hammamikhairi/doughcalc/internal/storage"
)

const name = "doughcalc"

// overridden during build with ldflags
var version = "dev"

// TUIRunner runs the interactive calculator for a started session.
type TUIRunner func(ctx context.Context, eng *engine.Engine, log *logger.Logger, sessionID string, cfg config.Config) error

// Option configures the command tree.
type Option func(*app)

// WithOutput redirects command output.
func WithOutput(out, errOut io.Writer) Option {
	return func(a *app) {
		a.out = out
		a.errOut = errOut
	}
}

// WithClipboard replaces the system clipboard used by calc --copy.
func WithClipboard(clip domain.Clipboard) Option {
	return func(a *app) {
		a.clip = clip
	}
}

// WithLogger uses log instead of opening the configured log output.
func WithLogger(log *logger.Logger) Option {
	return func(a *app) {
		a.log = log
	}
}

// WithTUIRunner replaces the terminal UI.
func WithTUIRunner(run TUIRunner) Option {
	return func(a *app) {
		a.runTUI = run
	}
}

type app struct {
	out     io.Writer
	errOut  io.Writer
	clip    domain.Clipboard
	log     *logger.Logger
	runTUI  TUIRunner
	presets *preset.MemorySource
}

// New builds the root command.
func New(opts ...Option) *cli.Command {
	a := &app{
		out:    os.Stdout,
		errOut: os.Stderr,
		clip:   export.SystemClipboard{},
		runTUI: runDisplay,
	}
	for _, opt := range opts {
		opt(a)
	}

	tui := a.tuiCmd()
	return &cli.Command{
		Name:                  name,
		Version:               version,
		Usage:                 "Pizza dough calculator in baker's percentages",
		EnableShellCompletion: true,
		Writer:                a.out,
		ErrWriter:             a.errOut,
		Flags:                 append(globalFlags(), recipeFlags()...),
		Action:                tui.Action,
		Commands: []*cli.Command{
			tui,
			a.calcCmd(),
			a.linkCmd(),
			a.presetsCmd(),
		},
	}
}

// Execute runs the command line and exits non-zero on failure.
func Execute(ctx context.Context, args []string) {
	if err := New().Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func globalFlags() []cli.Flag {
	def := config.Default()
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "log-level",
			Value:   def.LogLevel,
			Usage:   "log level (off, normal, verbose)",
			Sources: cli.EnvVars(config.EnvLogLevel),
		},
		&cli.StringFlag{
			Name:    "log-file",
			Value:   def.LogFile,
			Usage:   `file to write logs to (use "stderr" to log to console)`,
			Sources: cli.EnvVars(config.EnvLogFile),
		},
		&cli.StringFlag{
			Name:    "base-url",
			Value:   def.BaseURL,
			Usage:   "page that share links point at",
			Sources: cli.EnvVars(config.EnvBaseURL),
		},
	}
}

// setup validates the configuration and prepares the logger. The returned
// func releases the log output.
func (a *app) setup(cmd *cli.Command) (config.Config, *logger.Logger, func(), error) {
	cfg := config.Config{
		LogLevel: cmd.String("log-level"),
		LogFile:  cmd.String("log-file"),
		BaseURL:  cmd.String("base-url"),
	}
	if err := cfg.Validate(); err != nil {
		return cfg, nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if a.log != nil {
		return cfg, a.log, func() {}, nil
	}

	log, closeLog, err := cfg.Logger()
	if err != nil {
		return cfg, nil, nil, err
	}
	log.Info("%s %s starting (level=%s)", name, version, log.GetLevel())
	return cfg, log, func() { _ = closeLog() }, nil
}

func (a *app) presetSource(log *logger.Logger) *preset.MemorySource {
	if a.presets == nil {
		a.presets = preset.NewMemorySource(log)
	}
	return a.presets
}

// startSession builds the recipe from the command's sources and opens an
// engine session on it.
func (a *app) startSession(ctx context.Context, cmd *cli.Command, log *logger.Logger) (*engine.Engine, *domain.Session, error) {
	r, err := buildRecipe(ctx, cmd, a.presetSource(log))
	if err != nil {
		return nil, nil, err
	}

	eng := engine.New(storage.NewMemoryStore(log), log)
	session, err := eng.StartSession(ctx, &r)
	if err != nil {
		return nil, nil, fmt.Errorf("starting session: %w", err)
	}
	return eng, session, nil
}

// endSession discards the session once the command is done with it.
func endSession(ctx context.Context, eng *engine.Engine, log *logger.Logger, sessionID string) {
	if err := eng.EndSession(context.WithoutCancel(ctx), sessionID); err != nil {
		log.Warn("failed to end session: %v", err)
	}
}

func runDisplay(ctx context.Context, eng *engine.Engine, log *logger.Logger, sessionID string, cfg config.Config) error {
	ui := display.NewUI(eng, log, display.WithBaseURL(cfg.BaseURL))
	return ui.Run(ctx, sessionID)
}
