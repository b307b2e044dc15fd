package engine

import (
	"strings"

	"github.com/hammamikhairi/doughcalc/internal/domain"
)

// Edits store raw text verbatim so the inputs never fight the keystrokes.
// Commits (blur or Enter) normalize the text and write derived weights back.
// All functions mutate r in place and report whether anything was applied.

// EditPercentage stores the raw percentage text of ingredient i.
func EditPercentage(r *domain.Recipe, i int, text string) bool {
	if i < 0 || i >= len(r.Ingredients) {
		return false
	}
	r.Ingredients[i].Percentage = text
	return true
}

// EditFlourWeight stores the raw flour weight text.
func EditFlourWeight(r *domain.Recipe, text string) {
	r.FlourWeight = text
}

// EditNumberOfBalls stores the raw ball count text.
func EditNumberOfBalls(r *domain.Recipe, text string) {
	r.NumberOfBalls = text
}

// EditWeightPerBall stores the raw weight-per-ball text.
func EditWeightPerBall(r *domain.Recipe, text string) {
	r.WeightPerBall = text
}

// CommitPercentage normalizes ingredient i's percentage to 2 decimals and
// recomputes weights. In dough-ball mode the percentage sum moves the flour
// weight, so flour is re-derived and every weight follows. In flour-weight
// mode only ingredient i changes.
func CommitPercentage(r *domain.Recipe, i int) bool {
	if i < 0 || i >= len(r.Ingredients) {
		return false
	}
	r.Ingredients[i].Percentage = FormatPercentage(r.Ingredients[i].Percentage)

	if r.Mode == domain.ModeDoughBalls {
		rederive(r)
		return true
	}

	flour := ParseOrZero(r.FlourWeight)
	r.Ingredients[i].Weight = ingredientWeight(r.Ingredients[i].Percentage, flour)
	return true
}

// CommitFlourWeight normalizes the flour weight (blank -> 0, unparsable -> 0)
// and recomputes every ingredient weight. Flour-weight mode only.
func CommitFlourWeight(r *domain.Recipe) bool {
	if r.Mode != domain.ModeFlourWeight {
		return false
	}
	fw := strings.TrimSpace(r.FlourWeight)
	if fw == "" {
		fw = "0"
	}
	flour := ParseOrZero(fw)
	r.FlourWeight = formatExact(flour)
	applyWeights(r, flour)
	return true
}

// CommitDoughBalls re-derives flour from the ball inputs and recomputes
// every ingredient weight. Dough-ball mode only.
func CommitDoughBalls(r *domain.Recipe) bool {
	if r.Mode != domain.ModeDoughBalls {
		return false
	}
	rederive(r)
	return true
}

// SwitchMode changes the authoritative input. It recomputes nothing by
// itself; callers run Reconcile right after.
func SwitchMode(r *domain.Recipe, mode domain.Mode) bool {
	if r.Mode == mode {
		return false
	}
	r.Mode = mode
	return true
}

// AddIngredient appends an ingredient with the given percentage. Empty names
// and the reserved flour name are rejected.
func AddIngredient(r *domain.Recipe, name, percentage string) bool {
	name = strings.TrimSpace(name)
	if name == "" || domain.IsFlour(name) {
		return false
	}
	pct := FormatPercentage(percentage)
	r.Ingredients = append(r.Ingredients, domain.Ingredient{
		Name:       name,
		Percentage: pct,
		Weight:     ingredientWeight(pct, ParseOrZero(r.FlourWeight)),
	})
	return true
}

// RemoveIngredient drops ingredient i.
func RemoveIngredient(r *domain.Recipe, i int) bool {
	if i < 0 || i >= len(r.Ingredients) {
		return false
	}
	r.Ingredients = append(r.Ingredients[:i], r.Ingredients[i+1:]...)
	return true
}

// Reconcile is the reactive recompute pass, run after every mutation. In
// dough-ball mode it re-derives flour and all weights from the ball inputs
// and percentages. When the derived values already match what is stored
// (within rounding) it returns r untouched and false, so invoking it again
// can never cascade. In flour-weight mode the stored flour is authoritative
// and nothing is derived.
func Reconcile(r domain.Recipe) (domain.Recipe, bool) {
	if r.Mode != domain.ModeDoughBalls {
		return r, false
	}

	flour := DeriveFlourWeight(&r)
	weights := DeriveIngredientWeights(&r, flour)

	changed := Round2(ParseOrZero(r.FlourWeight)) != Round2(flour)
	for i, w := range weights {
		if r.Ingredients[i].Weight != w.Weight {
			changed = true
			break
		}
	}
	if !changed {
		return r, false
	}

	out := r.Clone()
	out.FlourWeight = formatExact(flour)
	for i, w := range weights {
		out.Ingredients[i].Weight = w.Weight
	}
	return out, true
}

// Recalculate brings every stored weight in line with r's mode, as if the
// authoritative input had just been committed. Used when a recipe arrives
// wholesale from a link, document or preset.
func Recalculate(r domain.Recipe) domain.Recipe {
	r = r.Clone()
	if r.Mode == domain.ModeDoughBalls {
		rederive(&r)
		return r
	}
	CommitFlourWeight(&r)
	return r
}

// rederive writes the derived flour and all ingredient weights.
func rederive(r *domain.Recipe) {
	flour := DeriveFlourWeight(r)
	r.FlourWeight = formatExact(flour)
	applyWeights(r, flour)
}

func applyWeights(r *domain.Recipe, flour float64) {
	for i := range r.Ingredients {
		r.Ingredients[i].Weight = ingredientWeight(r.Ingredients[i].Percentage, flour)
	}
}
