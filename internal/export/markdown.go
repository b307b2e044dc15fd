// Package export renders calculator results for people and programs:
// a Markdown report, JSON, YAML and a terminal table, plus clipboard output.
package export

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/hammamikhairi/doughcalc/internal/domain"
	"github.com/hammamikhairi/doughcalc/internal/engine"
)

// Column headers of the ingredient table.
var tableHeader = []string{"Ingredient", "Baker's Percentage (%)", "Weight (g)"}

var tableAlign = tw.Alignment{tw.AlignLeft, tw.AlignCenter, tw.AlignRight}

// Markdown renders the result as a Markdown recipe. The ball pair is only a
// label here; flour and every weight come from the result.
func Markdown(res domain.Result) string {
	var b strings.Builder

	b.WriteString("# Pizza Dough Recipe\n\n")
	if res.Mode == domain.ModeDoughBalls {
		fmt.Fprintf(&b, "- **Number of Balls**: %s\n", res.NumberOfBalls)
		fmt.Fprintf(&b, "- **Weight per Ball**: %sg\n\n", res.WeightPerBall)
	} else {
		fmt.Fprintf(&b, "- **Flour Weight**: %sg\n\n", engine.FormatGrams(res.FlourWeight))
	}

	b.WriteString("## Ingredients\n\n")
	if err := markdownTable(&b, tableRows(res), tableAlign); err != nil {
		fmt.Fprintf(&b, "\n_table unavailable: %v_\n", err)
	}
	return b.String()
}

// tableRows builds the header, the flour reference row, one row per
// ingredient and the total row.
func tableRows(res domain.Result) [][]string {
	rows := make([][]string, 0, len(res.Ingredients)+3)
	rows = append(rows, tableHeader)
	rows = append(rows, []string{domain.FlourName, "100", engine.FormatGrams(res.FlourWeight)})
	for _, ing := range res.Ingredients {
		name := ing.Name
		if ing.PreFerment {
			name = "*" + name + "*"
		}
		rows = append(rows, []string{name, ing.Percentage, engine.FormatGrams(ing.Weight)})
	}
	rows = append(rows, []string{"**Total**", "", "**" + engine.FormatGrams(res.TotalWeight) + "**"})
	return rows
}

// markdownTable writes rows as a GitHub-flavored table with every column
// padded to its widest cell. The first row is the header.
func markdownTable(b *strings.Builder, rows [][]string, aligns tw.Alignment) error {
	table := tablewriter.NewTable(b,
		tablewriter.WithRenderer(renderer.NewMarkdown()),
		tablewriter.WithHeaderAutoFormat(tw.Off),
		tablewriter.WithAlignment(aligns),
	)
	if len(rows) == 0 {
		return nil
	}

	table.Header(rows[0])
	for _, row := range rows[1:] {
		if err := table.Append(row); err != nil {
			return fmt.Errorf("appending table row: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("rendering table: %w", err)
	}
	return nil
}
