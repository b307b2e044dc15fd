// Package domain defines the core types and interfaces for the dough calculator.
// All other packages depend on domain; domain depends on nothing.
package domain

import "strings"

// FlourName is reserved: flour is tracked structurally as the 100% reference
// and never appears in the ingredient list.
const FlourName = "Flour"

// PreFermentName marks the starter-dough ingredient, rendered with emphasis.
const PreFermentName = "Pre-ferment"

// Mode selects which input is authoritative for the flour weight.
type Mode int

const (
	// ModeFlourWeight treats the typed flour weight as authoritative.
	ModeFlourWeight Mode = iota
	// ModeDoughBalls derives flour from ball count × weight per ball.
	ModeDoughBalls
)

// String returns the wire name of the mode, as used in share links.
func (m Mode) String() string {
	switch m {
	case ModeFlourWeight:
		return "weight"
	case ModeDoughBalls:
		return "doughBalls"
	default:
		return "unknown"
	}
}

// Label returns the human-readable tab title.
func (m Mode) Label() string {
	if m == ModeDoughBalls {
		return "Dough Balls"
	}
	return "Weight"
}

// ModeFromString converts a wire name to a Mode. The second result is false
// for unrecognized names.
func ModeFromString(name string) (Mode, bool) {
	switch name {
	case "weight":
		return ModeFlourWeight, true
	case "doughBalls":
		return ModeDoughBalls, true
	default:
		return ModeFlourWeight, false
	}
}

// Ingredient is a percentage-based ingredient. Percentage is kept as text so
// partially typed input ("1.") survives; Weight is always derived.
type Ingredient struct {
	Name       string
	Percentage string
	Weight     float64 // grams, rounded to 2 decimals when stored
}

// Recipe is the full calculator state. Every numeric input is text.
type Recipe struct {
	Mode          Mode
	FlourWeight   string // authoritative in ModeFlourWeight, derived otherwise
	NumberOfBalls string
	WeightPerBall string
	Ingredients   []Ingredient
}

// Clone returns a deep copy of the recipe.
func (r Recipe) Clone() Recipe {
	out := r
	out.Ingredients = make([]Ingredient, len(r.Ingredients))
	copy(out.Ingredients, r.Ingredients)
	return out
}

// DefaultRecipe returns the starting recipe: 1000g flour with water, salt,
// malt, olive oil and pre-ferment.
func DefaultRecipe() Recipe {
	return Recipe{
		Mode:          ModeFlourWeight,
		FlourWeight:   "1000",
		NumberOfBalls: "4",
		WeightPerBall: "250",
		Ingredients: []Ingredient{
			{Name: "Water", Percentage: "66", Weight: 660},
			{Name: "Salt", Percentage: "2", Weight: 20},
			{Name: "Malt", Percentage: "1", Weight: 10},
			{Name: "Olive oil", Percentage: "2", Weight: 20},
			{Name: PreFermentName, Percentage: "20", Weight: 200},
		},
	}
}

// IsFlour reports whether name is the reserved flour entry.
func IsFlour(name string) bool {
	return strings.EqualFold(strings.TrimSpace(name), FlourName)
}

// IsPreFerment reports whether name is the pre-ferment ingredient.
func IsPreFerment(name string) bool {
	return strings.EqualFold(strings.TrimSpace(name), PreFermentName)
}
