package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hammamikhairi/doughcalc/internal/domain"
	"github.com/hammamikhairi/doughcalc/internal/share"
)

func recipeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "preset",
			Aliases: []string{"p"},
			Usage:   "start from a built-in formula (see: doughcalc presets)",
			Sources: cli.EnvVars("DOUGHCALC_PRESET"),
		},
		&cli.StringFlag{
			Name:    "recipe",
			Aliases: []string{"f"},
			Usage:   "YAML or JSON recipe document to load",
		},
		&cli.StringFlag{
			Name:  "link",
			Usage: "share link or bare query string to load",
		},
		&cli.StringFlag{
			Name:  "mode",
			Usage: "authoritative input (weight, doughBalls)",
		},
		&cli.StringFlag{
			Name:  "flour",
			Usage: "flour weight in grams (weight mode)",
		},
		&cli.StringFlag{
			Name:  "balls",
			Usage: "number of dough balls (doughBalls mode)",
		},
		&cli.StringFlag{
			Name:  "ball-weight",
			Usage: "weight per dough ball in grams (doughBalls mode)",
		},
		&cli.StringSliceFlag{
			Name:    "ingredient",
			Aliases: []string{"i"},
			Usage:   "ingredient as name=percentage; repeat to replace the whole list",
		},
	}
}

// buildRecipe layers the recipe sources: preset or default, document, link,
// then flags. Weights are derived once at the end.
func buildRecipe(ctx context.Context, cmd *cli.Command, presets domain.PresetSource) (domain.Recipe, error) {
	r := domain.DefaultRecipe()

	if id := cmd.String("preset"); id != "" {
		p, err := presets.Get(ctx, id)
		if err != nil {
			return r, fmt.Errorf("preset %q: %w", id, err)
		}
		r = *p
	}

	if path := cmd.String("recipe"); path != "" {
		f, err := share.LoadDocument(path)
		if err != nil {
			return r, err
		}
		r = share.Apply(r, f)
	}

	if link := cmd.String("link"); link != "" {
		v, err := share.ParseLink(link)
		if err != nil {
			return r, err
		}
		r = share.Apply(r, share.FieldsFromValues(v))
	}

	overrides, err := flagFields(cmd)
	if err != nil {
		return r, err
	}
	return share.Apply(r, overrides), nil
}

// flagFields collects the per-field overrides. An unknown --mode is an
// error here, unlike in links, because the user typed it.
func flagFields(cmd *cli.Command) (share.Fields, error) {
	f := share.Fields{
		Mode:          cmd.String("mode"),
		FlourWeight:   cmd.String("flour"),
		NumberOfBalls: cmd.String("balls"),
		WeightPerBall: cmd.String("ball-weight"),
	}
	if f.Mode != "" {
		if _, ok := domain.ModeFromString(f.Mode); !ok {
			return f, fmt.Errorf("mode %q: expected %s or %s", f.Mode, domain.ModeFlourWeight, domain.ModeDoughBalls)
		}
	}

	for _, raw := range cmd.StringSlice("ingredient") {
		ing, err := share.ParseIngredient(raw)
		if err != nil {
			return f, err
		}
		f.Names = append(f.Names, ing.Name)
		f.Percentages = append(f.Percentages, ing.Percentage)
	}
	return f, nil
}
