package storage

import (
	"context"
	"testing"
	"time"

	"github.com/hammamikhairi/doughcalc/internal/domain"
	"github.com/hammamikhairi/doughcalc/internal/logger"
)

func TestMemoryStoreCRUD(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	store := NewMemoryStore(log)
	ctx := context.Background()

	session := &domain.Session{
		ID:        "test-session-1",
		Recipe:    domain.DefaultRecipe(),
		StartedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	// Save.
	if err := store.Save(ctx, session); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Load.
	loaded, err := store.Load(ctx, "test-session-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.ID != session.ID {
		t.Fatalf("expected ID %s, got %s", session.ID, loaded.ID)
	}
	if len(loaded.Recipe.Ingredients) != 5 {
		t.Fatalf("expected 5 ingredients, got %d", len(loaded.Recipe.Ingredients))
	}

	// Load nonexistent.
	_, err = store.Load(ctx, "nonexistent")
	if err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// Delete.
	if err := store.Delete(ctx, "test-session-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	_, err = store.Load(ctx, "test-session-1")
	if err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	// Delete nonexistent.
	if err := store.Delete(ctx, "nonexistent"); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
