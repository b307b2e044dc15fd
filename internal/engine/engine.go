package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/hammamikhairi/doughcalc/internal/domain"
	"github.com/hammamikhairi/doughcalc/internal/logger"
)

// Option configures the engine.
type Option func(*Engine)

// WithDefaultRecipe sets the recipe new sessions and resets start from.
func WithDefaultRecipe(r domain.Recipe) Option {
	return func(e *Engine) {
		e.defaultRecipe = r.Clone()
	}
}

// Engine drives calculator sessions held in a SessionStore. Every mutating
// call loads the session, applies the edit or commit, runs Reconcile, saves
// and returns the fresh Result.
type Engine struct {
	store         domain.SessionStore
	log           *logger.Logger
	defaultRecipe domain.Recipe
}

// New creates an engine with the given dependencies and options.
func New(store domain.SessionStore, log *logger.Logger, opts ...Option) *Engine {
	e := &Engine{
		store:         store,
		log:           log,
		defaultRecipe: domain.DefaultRecipe(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// StartSession creates a session. A nil initial recipe starts from the
// engine default.
func (e *Engine) StartSession(ctx context.Context, initial *domain.Recipe) (*domain.Session, error) {
	r := e.defaultRecipe.Clone()
	if initial != nil {
		r = initial.Clone()
	}
	r, _ = Reconcile(r)

	now := time.Now()
	session := &domain.Session{
		ID:        generateID(),
		Recipe:    r,
		StartedAt: now,
		UpdatedAt: now,
	}

	if err := e.store.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}

	e.log.Info("started session %s (mode=%s, %d ingredients)", session.ID, r.Mode, len(r.Ingredients))
	return session, nil
}

// EndSession discards a session. Later calls with its ID fail with
// domain.ErrNotFound.
func (e *Engine) EndSession(ctx context.Context, sessionID string) error {
	if err := e.store.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("ending session: %w", err)
	}
	e.log.Info("ended session %s", sessionID)
	return nil
}

// Session returns the stored session.
func (e *Engine) Session(ctx context.Context, sessionID string) (*domain.Session, error) {
	return e.store.Load(ctx, sessionID)
}

// Recipe returns a copy of the session's current recipe.
func (e *Engine) Recipe(ctx context.Context, sessionID string) (domain.Recipe, error) {
	session, err := e.store.Load(ctx, sessionID)
	if err != nil {
		return domain.Recipe{}, fmt.Errorf("loading session: %w", err)
	}
	return session.Recipe.Clone(), nil
}

// Result returns the output contract for the session's current state.
func (e *Engine) Result(ctx context.Context, sessionID string) (*domain.Result, error) {
	session, err := e.store.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}
	res := Summarize(&session.Recipe)
	return &res, nil
}

// Replace swaps the whole recipe, e.g. when a share link or preset supplies
// an alternate state.
func (e *Engine) Replace(ctx context.Context, sessionID string, r domain.Recipe) (*domain.Result, error) {
	return e.mutate(ctx, sessionID, "replace", func(cur *domain.Recipe) error {
		*cur = r.Clone()
		return nil
	})
}

// Reset restores the engine default recipe.
func (e *Engine) Reset(ctx context.Context, sessionID string) (*domain.Result, error) {
	return e.Replace(ctx, sessionID, e.defaultRecipe)
}

// EditPercentage stores raw percentage text for ingredient i.
func (e *Engine) EditPercentage(ctx context.Context, sessionID string, i int, text string) (*domain.Result, error) {
	return e.mutate(ctx, sessionID, "edit percentage", func(r *domain.Recipe) error {
		if !EditPercentage(r, i, text) {
			return fmt.Errorf("ingredient %d: %w", i, domain.ErrIngredientIndex)
		}
		return nil
	})
}

// CommitPercentage commits ingredient i's percentage.
func (e *Engine) CommitPercentage(ctx context.Context, sessionID string, i int) (*domain.Result, error) {
	return e.mutate(ctx, sessionID, "commit percentage", func(r *domain.Recipe) error {
		if !CommitPercentage(r, i) {
			return fmt.Errorf("ingredient %d: %w", i, domain.ErrIngredientIndex)
		}
		return nil
	})
}

// EditFlourWeight stores raw flour weight text.
func (e *Engine) EditFlourWeight(ctx context.Context, sessionID, text string) (*domain.Result, error) {
	return e.mutate(ctx, sessionID, "edit flour", func(r *domain.Recipe) error {
		EditFlourWeight(r, text)
		return nil
	})
}

// CommitFlourWeight commits the flour weight. Ignored outside flour-weight mode.
func (e *Engine) CommitFlourWeight(ctx context.Context, sessionID string) (*domain.Result, error) {
	return e.mutate(ctx, sessionID, "commit flour", func(r *domain.Recipe) error {
		if !CommitFlourWeight(r) {
			e.log.Debug("session %s: flour commit ignored in %s mode", sessionID, r.Mode)
		}
		return nil
	})
}

// EditNumberOfBalls stores raw ball count text.
func (e *Engine) EditNumberOfBalls(ctx context.Context, sessionID, text string) (*domain.Result, error) {
	return e.mutate(ctx, sessionID, "edit balls", func(r *domain.Recipe) error {
		EditNumberOfBalls(r, text)
		return nil
	})
}

// EditWeightPerBall stores raw weight-per-ball text.
func (e *Engine) EditWeightPerBall(ctx context.Context, sessionID, text string) (*domain.Result, error) {
	return e.mutate(ctx, sessionID, "edit ball weight", func(r *domain.Recipe) error {
		EditWeightPerBall(r, text)
		return nil
	})
}

// CommitDoughBalls commits the ball inputs. Ignored outside dough-ball mode.
func (e *Engine) CommitDoughBalls(ctx context.Context, sessionID string) (*domain.Result, error) {
	return e.mutate(ctx, sessionID, "commit balls", func(r *domain.Recipe) error {
		if !CommitDoughBalls(r) {
			e.log.Debug("session %s: ball commit ignored in %s mode", sessionID, r.Mode)
		}
		return nil
	})
}

// SwitchMode changes the session mode; the reconcile pass re-derives under
// the new mode's rules.
func (e *Engine) SwitchMode(ctx context.Context, sessionID string, mode domain.Mode) (*domain.Result, error) {
	return e.mutate(ctx, sessionID, "switch mode", func(r *domain.Recipe) error {
		SwitchMode(r, mode)
		return nil
	})
}

// AddIngredient appends an ingredient.
func (e *Engine) AddIngredient(ctx context.Context, sessionID, name, percentage string) (*domain.Result, error) {
	return e.mutate(ctx, sessionID, "add ingredient", func(r *domain.Recipe) error {
		if !AddIngredient(r, name, percentage) {
			return fmt.Errorf("%q: %w", name, domain.ErrInvalidName)
		}
		return nil
	})
}

// RemoveIngredient drops ingredient i.
func (e *Engine) RemoveIngredient(ctx context.Context, sessionID string, i int) (*domain.Result, error) {
	return e.mutate(ctx, sessionID, "remove ingredient", func(r *domain.Recipe) error {
		if !RemoveIngredient(r, i) {
			return fmt.Errorf("ingredient %d: %w", i, domain.ErrIngredientIndex)
		}
		return nil
	})
}

// mutate applies fn to a working copy of the session recipe, reconciles and
// saves. On error the stored session is left untouched.
func (e *Engine) mutate(ctx context.Context, sessionID, op string, fn func(*domain.Recipe) error) (*domain.Result, error) {
	session, err := e.store.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}

	r := session.Recipe.Clone()
	if err := fn(&r); err != nil {
		return nil, err
	}
	r, reconciled := Reconcile(r)

	session.Recipe = r
	session.Revision++
	session.UpdatedAt = time.Now()

	if err := e.store.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}

	e.log.Debug("session %s: %s (rev=%d, reconciled=%t)", sessionID, op, session.Revision, reconciled)
	res := Summarize(&session.Recipe)
	return &res, nil
}
