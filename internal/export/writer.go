package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/hammamikhairi/doughcalc/internal/domain"
	"github.com/hammamikhairi/doughcalc/internal/engine"
	"github.com/hammamikhairi/doughcalc/internal/logger"
)

// Format is an output format name.
type Format string

const (
	// FormatMarkdown is the shareable recipe report.
	FormatMarkdown Format = "markdown"
	// FormatJSON is the indented output contract.
	FormatJSON Format = "json"
	// FormatYAML is the output contract as YAML.
	FormatYAML Format = "yaml"
	// FormatTable is a bordered terminal table.
	FormatTable Format = "table"
)

// SupportedFormats lists every format name accepted by ParseFormat.
func SupportedFormats() []string {
	return []string{
		string(FormatMarkdown),
		string(FormatJSON),
		string(FormatYAML),
		string(FormatTable),
	}
}

// ParseFormat converts a name to a Format. "md" is accepted for markdown.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatMarkdown, FormatJSON, FormatYAML, FormatTable:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("%q: %w", name, domain.ErrUnknownFormat)
	}
}

// Writer serializes results in one format to one destination.
// Close must be called when the writer was opened on a file.
type Writer struct {
	format Format
	output io.Writer
	closer io.Closer
}

// NewWriter creates a writer. A nil output means stdout.
func NewWriter(format Format, output io.Writer) *Writer {
	if output == nil {
		output = os.Stdout
	}
	return &Writer{format: format, output: output}
}

// NewFileWriterOrStdout opens path for writing. An empty path, or a file
// that cannot be created, falls back to stdout.
func NewFileWriterOrStdout(format Format, path string, log *logger.Logger) *Writer {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return NewWriter(format, os.Stdout)
	}

	file, err := os.Create(trimmed)
	if err != nil {
		log.Error("failed to create output file %s, using stdout: %v", trimmed, err)
		return NewWriter(format, os.Stdout)
	}

	log.Debug("writing %s output to %s", format, trimmed)
	return &Writer{format: format, output: file, closer: file}
}

// Close releases the output file, if any. Safe to call more than once.
func (w *Writer) Close() error {
	if w.closer == nil {
		return nil
	}
	err := w.closer.Close()
	w.closer = nil
	return err
}

// Serialize writes res in the writer's format.
func (w *Writer) Serialize(ctx context.Context, res domain.Result) error {
	switch w.format {
	case FormatMarkdown:
		_, err := io.WriteString(w.output, Markdown(res))
		return err
	case FormatJSON:
		return w.serializeJSON(res)
	case FormatYAML:
		return w.serializeYAML(res)
	case FormatTable:
		return w.serializeTable(res)
	default:
		return fmt.Errorf("%q: %w", w.format, domain.ErrUnknownFormat)
	}
}

func (w *Writer) serializeJSON(res domain.Result) error {
	encoder := json.NewEncoder(w.output)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(res); err != nil {
		return fmt.Errorf("failed to serialize to JSON: %w", err)
	}
	return nil
}

func (w *Writer) serializeYAML(res domain.Result) error {
	encoder := yaml.NewEncoder(w.output)
	encoder.SetIndent(2)
	if err := encoder.Encode(res); err != nil {
		return fmt.Errorf("failed to serialize to YAML: %w", err)
	}
	return encoder.Close()
}

func (w *Writer) serializeTable(res domain.Result) error {
	rows := tableRows(res)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(rows[0]...).
		Rows(plainRows(res)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			switch col {
			case 1:
				style = style.Align(lipgloss.Center)
			case 2:
				style = style.Align(lipgloss.Right)
			}
			if row == table.HeaderRow {
				style = style.Bold(true)
			}
			return style
		})

	if _, err := fmt.Fprintln(w.output, t.Render()); err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}
	return nil
}

// plainRows is the table body without Markdown emphasis.
func plainRows(res domain.Result) [][]string {
	rows := make([][]string, 0, len(res.Ingredients)+2)
	rows = append(rows, []string{domain.FlourName, "100", engine.FormatGrams(res.FlourWeight)})
	for _, ing := range res.Ingredients {
		rows = append(rows, []string{ing.Name, ing.Percentage, engine.FormatGrams(ing.Weight)})
	}
	rows = append(rows, []string{"Total", "", engine.FormatGrams(res.TotalWeight)})
	return rows
}
