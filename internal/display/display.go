// Package display provides the terminal UI using Bubble Tea.
//
// The calculator runs inline below the banner: mode tabs, the inputs of
// the active mode and a live ingredient table. Every keystroke goes through
// the engine, which owns the session state; the model only mirrors it.
package display

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hammamikhairi/doughcalc/internal/config"
	"github.com/hammamikhairi/doughcalc/internal/domain"
	"github.com/hammamikhairi/doughcalc/internal/engine"
	"github.com/hammamikhairi/doughcalc/internal/export"
	"github.com/hammamikhairi/doughcalc/internal/logger"
)

type uiConfig struct {
	baseURL string
	clip    domain.Clipboard
	log     *logger.Logger
}

// Option configures the UI.
type Option func(*uiConfig)

// WithBaseURL sets the page share links point at.
func WithBaseURL(base string) Option {
	return func(c *uiConfig) {
		c.baseURL = base
	}
}

// WithClipboard replaces the system clipboard.
func WithClipboard(clip domain.Clipboard) Option {
	return func(c *uiConfig) {
		c.clip = clip
	}
}

// UI runs the calculator over one engine session.
//
// Call [NewUI] then [UI.Run] (blocking).
type UI struct {
	eng *engine.Engine
	cfg uiConfig
}

// NewUI creates the display. Call Run() to start.
func NewUI(eng *engine.Engine, log *logger.Logger, opts ...Option) *UI {
	if log == nil {
		log = logger.Discard()
	}
	cfg := uiConfig{
		baseURL: config.DefaultBaseURL,
		clip:    export.SystemClipboard{},
		log:     log,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &UI{eng: eng, cfg: cfg}
}

// Run prints the banner and starts the Bubble Tea event loop for the given
// session. Blocks until the user quits or ctx is cancelled.
func (u *UI) Run(ctx context.Context, sessionID string) error {
	m, err := newModel(ctx, u.eng, sessionID, u.cfg)
	if err != nil {
		return err
	}

	fmt.Print(RenderBanner(0))

	p := tea.NewProgram(m, tea.WithContext(ctx))
	_, err = p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("running terminal ui: %w", err)
	}
	u.cfg.log.Info("ui closed for session %s", sessionID)
	return nil
}
