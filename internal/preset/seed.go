package preset

import (
	"context"

	"github.com/hammamikhairi/doughcalc/internal/domain"
)

// seed populates the source with built-in formulas.
func (s *MemorySource) seed() {
	ctx := context.Background()
	for _, p := range builtins() {
		if err := s.Add(ctx, p.summary, p.recipe); err != nil {
			s.log.Warn("skipping preset %s: %v", p.summary.ID, err)
		}
	}
	s.log.Debug("seeded %d presets", len(s.presets))
}

func builtins() []preset {
	return []preset{
		{
			summary: domain.PresetSummary{
				ID:          DefaultID,
				Name:        "Classic",
				Description: "All-round home oven dough with a pre-ferment",
				Tags:        []string{"default", "home oven", "pre-ferment"},
			},
			recipe: domain.DefaultRecipe(),
		},
		{
			summary: domain.PresetSummary{
				ID:          "neapolitan",
				Name:        "Neapolitan",
				Description: "Soft, high-heat dough: flour, water, salt and a little yeast",
				Tags:        []string{"wood fired", "00 flour", "dough balls"},
			},
			recipe: domain.Recipe{
				Mode:          domain.ModeDoughBalls,
				FlourWeight:   "1000",
				NumberOfBalls: "6",
				WeightPerBall: "270",
				Ingredients: []domain.Ingredient{
					{Name: "Water", Percentage: "62"},
					{Name: "Salt", Percentage: "2.8"},
					{Name: "Fresh yeast", Percentage: "0.2"},
				},
			},
		},
		{
			summary: domain.PresetSummary{
				ID:          "new-york",
				Name:        "New York",
				Description: "Large, foldable slices with oil and sugar for browning",
				Tags:        []string{"home oven", "cold ferment"},
			},
			recipe: domain.Recipe{
				Mode:          domain.ModeDoughBalls,
				FlourWeight:   "1000",
				NumberOfBalls: "3",
				WeightPerBall: "550",
				Ingredients: []domain.Ingredient{
					{Name: "Water", Percentage: "63"},
					{Name: "Salt", Percentage: "2"},
					{Name: "Sugar", Percentage: "2"},
					{Name: "Olive oil", Percentage: "3"},
					{Name: "Instant yeast", Percentage: "0.5"},
				},
			},
		},
		{
			summary: domain.PresetSummary{
				ID:          "detroit",
				Name:        "Detroit",
				Description: "Pan pizza with a high-hydration, airy crumb",
				Tags:        []string{"pan", "high hydration"},
			},
			recipe: domain.Recipe{
				Mode:          domain.ModeFlourWeight,
				FlourWeight:   "500",
				NumberOfBalls: "2",
				WeightPerBall: "425",
				Ingredients: []domain.Ingredient{
					{Name: "Water", Percentage: "70"},
					{Name: "Salt", Percentage: "2.5"},
					{Name: "Instant yeast", Percentage: "0.5"},
					{Name: "Olive oil", Percentage: "1.5"},
				},
			},
		},
		{
			summary: domain.PresetSummary{
				ID:          "roman-teglia",
				Name:        "Roman Teglia",
				Description: "Very wet tray dough built on a pre-ferment",
				Tags:        []string{"pan", "high hydration", "pre-ferment"},
			},
			recipe: domain.Recipe{
				Mode:          domain.ModeFlourWeight,
				FlourWeight:   "1000",
				NumberOfBalls: "2",
				WeightPerBall: "900",
				Ingredients: []domain.Ingredient{
					{Name: "Water", Percentage: "80"},
					{Name: "Salt", Percentage: "2.5"},
					{Name: "Olive oil", Percentage: "2"},
					{Name: "Instant yeast", Percentage: "0.3"},
					{Name: domain.PreFermentName, Percentage: "20"},
				},
			},
		},
	}
}
