package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/hammamikhairi/doughcalc/internal/domain"
	"github.com/hammamikhairi/doughcalc/internal/logger"
	"github.com/hammamikhairi/doughcalc/internal/storage"
)

func setupEngine(t *testing.T, opts ...Option) (*Engine, context.Context) {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	store := storage.NewMemoryStore(log)
	eng := New(store, log, opts...)
	return eng, context.Background()
}

func startSession(t *testing.T, eng *Engine, ctx context.Context, initial *domain.Recipe) string {
	t.Helper()
	session, err := eng.StartSession(ctx, initial)
	if err != nil {
		t.Fatalf("starting session: %v", err)
	}
	return session.ID
}

func rowWeight(t *testing.T, res *domain.Result, name string) float64 {
	t.Helper()
	for _, row := range res.Ingredients {
		if row.Name == name {
			return row.Weight
		}
	}
	t.Fatalf("no row named %q", name)
	return 0
}

func TestStartSession(t *testing.T) {
	eng, ctx := setupEngine(t)

	tests := []struct {
		name      string
		initial   *domain.Recipe
		wantMode  domain.Mode
		wantFlour float64
	}{
		{"default recipe", nil, domain.ModeFlourWeight, 1000},
		{"dough balls reconciled on start", func() *domain.Recipe {
			r := ballsRecipe("4", "250")
			return &r
		}(), domain.ModeDoughBalls, 523.56},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := startSession(t, eng, ctx, tt.initial)
			res, err := eng.Result(ctx, id)
			if err != nil {
				t.Fatalf("result: %v", err)
			}
			if res.Mode != tt.wantMode {
				t.Fatalf("expected mode %s, got %s", tt.wantMode, res.Mode)
			}
			if res.FlourWeight != tt.wantFlour {
				t.Fatalf("expected flour %v, got %v", tt.wantFlour, res.FlourWeight)
			}
		})
	}
}

func TestStartSessionUniqueIDs(t *testing.T) {
	eng, ctx := setupEngine(t)
	a := startSession(t, eng, ctx, nil)
	b := startSession(t, eng, ctx, nil)
	if a == "" || a == b {
		t.Fatalf("expected distinct non-empty IDs, got %q and %q", a, b)
	}
}

func TestEndSession(t *testing.T) {
	eng, ctx := setupEngine(t)
	id := startSession(t, eng, ctx, nil)
	other := startSession(t, eng, ctx, nil)

	if err := eng.EndSession(ctx, id); err != nil {
		t.Fatalf("end session: %v", err)
	}
	if _, err := eng.Result(ctx, id); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after end, got %v", err)
	}
	if err := eng.EndSession(ctx, id); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second end, got %v", err)
	}
	if _, err := eng.Result(ctx, other); err != nil {
		t.Fatalf("other session should survive: %v", err)
	}
}

func TestSwitchModeRoundTrip(t *testing.T) {
	eng, ctx := setupEngine(t)
	id := startSession(t, eng, ctx, nil)

	res, err := eng.SwitchMode(ctx, id, domain.ModeDoughBalls)
	if err != nil {
		t.Fatalf("switch: %v", err)
	}
	if res.FlourWeight != 523.56 {
		t.Fatalf("expected flour 523.56, got %v", res.FlourWeight)
	}
	if w := rowWeight(t, res, "Water"); w != 345.55 {
		t.Fatalf("expected water 345.55, got %v", w)
	}
	if res.TotalWeight != 1000 {
		t.Fatalf("expected total 1000, got %v", res.TotalWeight)
	}

	// Back in weight mode the last derived flour is kept.
	res, err = eng.SwitchMode(ctx, id, domain.ModeFlourWeight)
	if err != nil {
		t.Fatalf("switch back: %v", err)
	}
	if res.FlourWeight != 523.56 {
		t.Fatalf("expected flour to stay 523.56, got %v", res.FlourWeight)
	}
	if res.NumberOfBalls != "" {
		t.Fatalf("ball fields belong to dough-ball mode only, got %q", res.NumberOfBalls)
	}
}

func TestEditThenCommitPercentage(t *testing.T) {
	eng, ctx := setupEngine(t)
	id := startSession(t, eng, ctx, nil)

	res, err := eng.EditPercentage(ctx, id, 1, "1.")
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if res.Ingredients[1].Percentage != "1." {
		t.Fatalf("expected raw text, got %q", res.Ingredients[1].Percentage)
	}
	if res.Ingredients[1].Weight != 20 {
		t.Fatalf("weight must not move before commit, got %v", res.Ingredients[1].Weight)
	}

	res, err = eng.CommitPercentage(ctx, id, 1)
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if res.Ingredients[1].Percentage != "1.00" || res.Ingredients[1].Weight != 10 {
		t.Fatalf("expected 1.00 / 10g, got %q / %v", res.Ingredients[1].Percentage, res.Ingredients[1].Weight)
	}
	if res.TotalWeight != 1900 {
		t.Fatalf("expected total 1900, got %v", res.TotalWeight)
	}
}

func TestLiveEditInDoughBallMode(t *testing.T) {
	eng, ctx := setupEngine(t)
	r := ballsRecipe("4", "250")
	id := startSession(t, eng, ctx, &r)

	res, err := eng.EditPercentage(ctx, id, 0, "70")
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if res.FlourWeight != 512.82 {
		t.Fatalf("expected flour 512.82, got %v", res.FlourWeight)
	}
	if w := rowWeight(t, res, "Water"); w != 358.97 {
		t.Fatalf("expected water 358.97, got %v", w)
	}

	res, err = eng.EditNumberOfBalls(ctx, id, "8")
	if err != nil {
		t.Fatalf("edit balls: %v", err)
	}
	if res.FlourWeight != 1025.64 {
		t.Fatalf("expected flour 1025.64, got %v", res.FlourWeight)
	}
	if res.NumberOfBalls != "8" {
		t.Fatalf("expected raw ball count, got %q", res.NumberOfBalls)
	}
}

func TestFlourWeightCommit(t *testing.T) {
	eng, ctx := setupEngine(t)
	id := startSession(t, eng, ctx, nil)

	res, err := eng.EditFlourWeight(ctx, id, "750abc")
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if w := rowWeight(t, res, "Water"); w != 660 {
		t.Fatalf("weights must wait for commit, water=%v", w)
	}

	res, err = eng.CommitFlourWeight(ctx, id)
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if res.FlourWeight != 750 {
		t.Fatalf("expected flour 750, got %v", res.FlourWeight)
	}
	if w := rowWeight(t, res, "Water"); w != 495 {
		t.Fatalf("expected water 495, got %v", w)
	}
	if res.TotalWeight != 1432.5 {
		t.Fatalf("expected total 1432.5, got %v", res.TotalWeight)
	}

	if _, err := eng.EditFlourWeight(ctx, id, ""); err != nil {
		t.Fatalf("edit: %v", err)
	}
	res, err = eng.CommitFlourWeight(ctx, id)
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if res.FlourWeight != 0 || res.TotalWeight != 0 {
		t.Fatalf("expected empty flour to zero everything, got flour=%v total=%v", res.FlourWeight, res.TotalWeight)
	}
	r, _ := eng.Recipe(ctx, id)
	if r.FlourWeight != "0" {
		t.Fatalf("expected stored flour \"0\", got %q", r.FlourWeight)
	}
}

func TestZeroBalls(t *testing.T) {
	eng, ctx := setupEngine(t)
	r := ballsRecipe("4", "250")
	id := startSession(t, eng, ctx, &r)

	res, err := eng.EditNumberOfBalls(ctx, id, "0")
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if res.FlourWeight != 0 || res.TotalWeight != 0 {
		t.Fatalf("expected zeros, got flour=%v total=%v", res.FlourWeight, res.TotalWeight)
	}
}

func TestErrors(t *testing.T) {
	eng, ctx := setupEngine(t)
	id := startSession(t, eng, ctx, nil)

	tests := []struct {
		name string
		call func() error
		want error
	}{
		{"unknown session", func() error {
			_, err := eng.CommitFlourWeight(ctx, "nope")
			return err
		}, domain.ErrNotFound},
		{"edit out of range", func() error {
			_, err := eng.EditPercentage(ctx, id, 42, "1")
			return err
		}, domain.ErrIngredientIndex},
		{"commit out of range", func() error {
			_, err := eng.CommitPercentage(ctx, id, -1)
			return err
		}, domain.ErrIngredientIndex},
		{"remove out of range", func() error {
			_, err := eng.RemoveIngredient(ctx, id, 5)
			return err
		}, domain.ErrIngredientIndex},
		{"add flour", func() error {
			_, err := eng.AddIngredient(ctx, id, "flour", "100")
			return err
		}, domain.ErrInvalidName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}

	// Failed calls leave the session untouched.
	session, err := eng.Session(ctx, id)
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	if session.Revision != 0 {
		t.Fatalf("expected revision 0, got %d", session.Revision)
	}
}

func TestAddRemoveAndReset(t *testing.T) {
	eng, ctx := setupEngine(t)
	id := startSession(t, eng, ctx, nil)

	res, err := eng.AddIngredient(ctx, id, "Yeast", "0.3")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(res.Ingredients) != 6 || rowWeight(t, res, "Yeast") != 3 {
		t.Fatalf("unexpected ingredients: %+v", res.Ingredients)
	}

	res, err = eng.RemoveIngredient(ctx, id, 0)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if res.Ingredients[0].Name != "Salt" {
		t.Fatalf("expected Salt first, got %s", res.Ingredients[0].Name)
	}

	res, err = eng.Reset(ctx, id)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if len(res.Ingredients) != 5 || res.TotalWeight != 1910 {
		t.Fatalf("expected default recipe back, got %d rows total=%v", len(res.Ingredients), res.TotalWeight)
	}

	session, _ := eng.Session(ctx, id)
	if session.Revision != 3 {
		t.Fatalf("expected revision 3, got %d", session.Revision)
	}
}

func TestReplaceReconciles(t *testing.T) {
	eng, ctx := setupEngine(t)
	id := startSession(t, eng, ctx, nil)

	res, err := eng.Replace(ctx, id, ballsRecipe("2", "500"))
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if res.Mode != domain.ModeDoughBalls || res.FlourWeight != 523.56 {
		t.Fatalf("expected reconciled dough-ball recipe, got mode=%s flour=%v", res.Mode, res.FlourWeight)
	}
}

func TestWithDefaultRecipe(t *testing.T) {
	custom := domain.Recipe{
		Mode:        domain.ModeFlourWeight,
		FlourWeight: "500",
		Ingredients: []domain.Ingredient{{Name: "Water", Percentage: "60", Weight: 300}},
	}
	eng, ctx := setupEngine(t, WithDefaultRecipe(custom))
	id := startSession(t, eng, ctx, nil)

	res, err := eng.Reset(ctx, id)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if res.TotalWeight != 800 {
		t.Fatalf("expected 800, got %v", res.TotalWeight)
	}
}
