// Package engine implements the dough recipe engine: baker's percentage
// math, the commit protocol for edited fields, and a session facade.
//
// The calculation functions in this file never fail. Unparsable or empty
// text reads as zero and every division is guarded.
package engine

import (
	"math"
	"math/big"
	"regexp"
	"strconv"

	"github.com/hammamikhairi/doughcalc/internal/domain"
)

// numberPrefix matches the leading decimal of a string, like a browser's
// parseFloat ("1." -> 1, "12g" -> 12).
var numberPrefix = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// weightTolerance is half a display unit at 2 decimals.
const weightTolerance = 0.005

// IngredientWeight is a derived (name, grams) pair.
type IngredientWeight struct {
	Name   string
	Weight float64
}

// ParseOrZero reads the leading decimal number of text. Anything that is
// empty, unparsable or non-finite yields 0.
func ParseOrZero(text string) float64 {
	m := numberPrefix.FindString(trimLeft(text))
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// HasNumber reports whether text, after leading whitespace, starts with a
// decimal number.
func HasNumber(text string) bool {
	return numberPrefix.MatchString(trimLeft(text))
}

func trimLeft(s string) string {
	for i, c := range s {
		switch c {
		case ' ', '\t', '\n', '\r', '\v', '\f':
			continue
		}
		return s[i:]
	}
	return ""
}

// Round2 rounds to 2 decimal places the way a fixed-point formatter does:
// the exact binary value is rounded, ties away from zero. 2.675 is stored as
// 2.67499... and rounds down.
func Round2(v float64) float64 {
	if v == 0 {
		return 0
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}

	// 2048 bits hold |v|×100 + 0.5 exactly for every finite float64.
	x := new(big.Float).SetPrec(2048).SetFloat64(math.Abs(v))
	x.Mul(x, big.NewFloat(100))
	x.Add(x, big.NewFloat(0.5))
	cents, _ := x.Int(nil)

	r, err := strconv.ParseFloat(cents.String()+"e-2", 64)
	if err != nil || r == 0 {
		return 0 // also drops negative zero
	}
	if v < 0 {
		r = -r
	}
	return r
}

// FormatPercentage normalizes percentage text to its fixed 2-decimal form.
func FormatPercentage(text string) string {
	return strconv.FormatFloat(Round2(ParseOrZero(text)), 'f', 2, 64)
}

// FormatGrams renders a weight with 2 decimals.
func FormatGrams(v float64) string {
	return strconv.FormatFloat(Round2(v), 'f', 2, 64)
}

// formatExact stores a derived number losslessly so that re-parsing yields
// the same float.
func formatExact(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// percentageSum returns S, the sum of all percentages as fractions.
func percentageSum(ings []domain.Ingredient) float64 {
	var s float64
	for _, ing := range ings {
		s += ParseOrZero(ing.Percentage) / 100
	}
	return s
}

// DeriveFlourWeight returns the flour weight for the recipe's mode. In
// flour-weight mode the stored value passes through. In dough-ball mode it
// solves flour × (1 + S) = balls × weightPerBall for flour.
func DeriveFlourWeight(r *domain.Recipe) float64 {
	if r.Mode != domain.ModeDoughBalls {
		return ParseOrZero(r.FlourWeight)
	}

	total := ParseOrZero(r.NumberOfBalls) * ParseOrZero(r.WeightPerBall)
	if total == 0 {
		return 0
	}

	divisor := 1 + percentageSum(r.Ingredients)
	if divisor <= 0 {
		// Percentages summing to -100% (or below) have no physical flour.
		return 0
	}
	return total / divisor
}

// ingredientWeight computes one ingredient's rounded weight.
func ingredientWeight(percentage string, flour float64) float64 {
	return Round2(ParseOrZero(percentage) / 100 * flour)
}

// DeriveIngredientWeights computes every ingredient weight from its
// percentage and the given flour weight, in list order.
func DeriveIngredientWeights(r *domain.Recipe, flour float64) []IngredientWeight {
	out := make([]IngredientWeight, len(r.Ingredients))
	for i, ing := range r.Ingredients {
		out[i] = IngredientWeight{Name: ing.Name, Weight: ingredientWeight(ing.Percentage, flour)}
	}
	return out
}

// TotalWeight sums the stored flour weight and the stored ingredient
// weights. It reads what was last committed and recomputes nothing.
func TotalWeight(r *domain.Recipe) float64 {
	total := ParseOrZero(r.FlourWeight)
	for _, ing := range r.Ingredients {
		total += ing.Weight
	}
	return total
}

// Summarize builds the output contract from the stored state.
func Summarize(r *domain.Recipe) domain.Result {
	res := domain.Result{
		Mode:        r.Mode,
		ModeName:    r.Mode.String(),
		FlourWeight: Round2(ParseOrZero(r.FlourWeight)),
		TotalWeight: Round2(TotalWeight(r)),
		Ingredients: make([]domain.ResultRow, len(r.Ingredients)),
	}
	if r.Mode == domain.ModeDoughBalls {
		res.NumberOfBalls = r.NumberOfBalls
		res.WeightPerBall = r.WeightPerBall
	}
	for i, ing := range r.Ingredients {
		res.Ingredients[i] = domain.ResultRow{
			Name:       ing.Name,
			Percentage: ing.Percentage,
			Weight:     Round2(ing.Weight),
			PreFerment: domain.IsPreFerment(ing.Name),
		}
	}
	return res
}
