// Package share moves calculator state in and out of the process: query
// string links and YAML/JSON recipe documents. Both carry the same flat set
// of text fields and go through the same rehydration rules.
package share

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/hammamikhairi/doughcalc/internal/domain"
	"github.com/hammamikhairi/doughcalc/internal/engine"
)

// Query keys.
const (
	KeyMode          = "activeTab"
	KeyFlourWeight   = "flourWeight"
	KeyNumberOfBalls = "numberOfBalls"
	KeyWeightPerBall = "weightPerBall"
	KeyNames         = "names"
	KeyPercentages   = "percentages"
)

const listSep = ","

// Fields is the flat, text-only form of a recipe. Names and Percentages are
// parallel lists.
type Fields struct {
	Mode          string   `yaml:"activeTab,omitempty" json:"activeTab,omitempty"`
	FlourWeight   string   `yaml:"flourWeight,omitempty" json:"flourWeight,omitempty"`
	NumberOfBalls string   `yaml:"numberOfBalls,omitempty" json:"numberOfBalls,omitempty"`
	WeightPerBall string   `yaml:"weightPerBall,omitempty" json:"weightPerBall,omitempty"`
	Names         []string `yaml:"names,omitempty" json:"names,omitempty"`
	Percentages   []string `yaml:"percentages,omitempty" json:"percentages,omitempty"`
}

// FromRecipe flattens r. Only the scalars of the active mode are written.
func FromRecipe(r domain.Recipe) Fields {
	f := Fields{
		Mode:        r.Mode.String(),
		Names:       make([]string, len(r.Ingredients)),
		Percentages: make([]string, len(r.Ingredients)),
	}
	if r.Mode == domain.ModeDoughBalls {
		f.NumberOfBalls = r.NumberOfBalls
		f.WeightPerBall = r.WeightPerBall
	} else {
		f.FlourWeight = r.FlourWeight
	}
	for i, ing := range r.Ingredients {
		f.Names[i] = ing.Name
		f.Percentages[i] = ing.Percentage
	}
	return f
}

// Values renders the fields as query values.
func (f Fields) Values() url.Values {
	v := url.Values{}
	set := func(key, val string) {
		if val != "" {
			v.Set(key, val)
		}
	}
	set(KeyMode, f.Mode)
	set(KeyFlourWeight, f.FlourWeight)
	set(KeyNumberOfBalls, f.NumberOfBalls)
	set(KeyWeightPerBall, f.WeightPerBall)
	v.Set(KeyNames, strings.Join(f.Names, listSep))
	v.Set(KeyPercentages, strings.Join(f.Percentages, listSep))
	return v
}

// FieldsFromValues reads query values. Empty values count as absent.
func FieldsFromValues(v url.Values) Fields {
	f := Fields{
		Mode:          v.Get(KeyMode),
		FlourWeight:   v.Get(KeyFlourWeight),
		NumberOfBalls: v.Get(KeyNumberOfBalls),
		WeightPerBall: v.Get(KeyWeightPerBall),
	}
	names, pcts := v.Get(KeyNames), v.Get(KeyPercentages)
	if names != "" && pcts != "" {
		f.Names = strings.Split(names, listSep)
		f.Percentages = strings.Split(pcts, listSep)
	}
	return f
}

// Encode returns the query values for r.
func Encode(r domain.Recipe) url.Values {
	return FromRecipe(r).Values()
}

// Link appends the encoded recipe to base as its query string.
func Link(base string, r domain.Recipe) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parsing base url: %w", err)
	}
	u.RawQuery = Encode(r).Encode()
	u.Fragment = ""
	return u.String(), nil
}

// ParseLink extracts query values from a full URL or a bare query string.
func ParseLink(raw string) (url.Values, error) {
	raw = strings.TrimSpace(raw)
	if i := strings.IndexByte(raw, '#'); i >= 0 {
		raw = raw[:i]
	}
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		raw = raw[i+1:]
	}
	v, err := url.ParseQuery(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing link query: %w", err)
	}
	return v, nil
}

// Decode rehydrates a recipe from query values on top of the default recipe.
func Decode(v url.Values) domain.Recipe {
	return Apply(domain.DefaultRecipe(), FieldsFromValues(v))
}

// Apply overlays f on base and recomputes the weights.
//
// An unknown mode is ignored and non-empty scalars are copied verbatim. The
// ingredient list is replaced only when both lists are present. Entries
// named Flour are dropped, and if the lists still differ in length the
// whole list is discarded. Percentages that are not numbers become "0".
func Apply(base domain.Recipe, f Fields) domain.Recipe {
	r := base.Clone()

	if mode, ok := domain.ModeFromString(f.Mode); ok {
		r.Mode = mode
	}
	if f.FlourWeight != "" {
		r.FlourWeight = f.FlourWeight
	}
	if f.NumberOfBalls != "" {
		r.NumberOfBalls = f.NumberOfBalls
	}
	if f.WeightPerBall != "" {
		r.WeightPerBall = f.WeightPerBall
	}
	if ings, ok := ingredients(f.Names, f.Percentages); ok {
		r.Ingredients = ings
	}

	return engine.Recalculate(r)
}

func ingredients(names, pcts []string) ([]domain.Ingredient, bool) {
	if len(names) == 0 || len(pcts) == 0 {
		return nil, false
	}

	var keptNames, keptPcts []string
	for i := 0; i < max(len(names), len(pcts)); i++ {
		if i < len(names) && domain.IsFlour(names[i]) {
			continue
		}
		if i < len(names) {
			keptNames = append(keptNames, names[i])
		}
		if i < len(pcts) {
			keptPcts = append(keptPcts, pcts[i])
		}
	}
	if len(keptNames) != len(keptPcts) {
		return nil, false
	}

	out := make([]domain.Ingredient, len(keptNames))
	for i, name := range keptNames {
		pct := strings.TrimSpace(keptPcts[i])
		if !engine.HasNumber(pct) {
			pct = "0"
		}
		out[i] = domain.Ingredient{Name: strings.TrimSpace(name), Percentage: pct}
	}
	return out, true
}

// ParseIngredient reads a "Name=percentage" pair.
func ParseIngredient(s string) (domain.Ingredient, error) {
	i := strings.LastIndexByte(s, '=')
	if i < 0 {
		return domain.Ingredient{}, fmt.Errorf("ingredient %q: expected name=percentage", s)
	}
	name := strings.TrimSpace(s[:i])
	if name == "" || domain.IsFlour(name) {
		return domain.Ingredient{}, fmt.Errorf("ingredient %q: %w", s, domain.ErrInvalidName)
	}
	return domain.Ingredient{
		Name:       name,
		Percentage: engine.FormatPercentage(s[i+1:]),
	}, nil
}
