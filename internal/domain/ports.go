package domain

import "context"

// SessionStore keeps calculator sessions for the lifetime of the process.
type SessionStore interface {
	Save(ctx context.Context, session *Session) error
	Load(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

// PresetSource provides built-in dough formulas that can replace the
// current state wholesale.
type PresetSource interface {
	List(ctx context.Context) ([]PresetSummary, error)
	Get(ctx context.Context, id string) (*Recipe, error)
	Search(ctx context.Context, query string) ([]PresetSummary, error)
}

// PresetSummary is a lightweight view of a preset for listing.
type PresetSummary struct {
	ID          string
	Name        string
	Description string
	Tags        []string
}

// Clipboard receives exported text. Implementations can target the system
// clipboard or a test buffer.
type Clipboard interface {
	WriteAll(text string) error
}
