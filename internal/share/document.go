package share

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hammamikhairi/doughcalc/internal/domain"
)

// ReadDocument decodes a YAML or JSON recipe document. An empty document
// yields empty fields.
func ReadDocument(r io.Reader) (Fields, error) {
	var f Fields
	if err := yaml.NewDecoder(r).Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return Fields{}, fmt.Errorf("decoding recipe document: %w", err)
	}
	return f, nil
}

// LoadDocument reads the recipe document at path.
func LoadDocument(path string) (Fields, error) {
	file, err := os.Open(path)
	if err != nil {
		return Fields{}, fmt.Errorf("opening recipe document: %w", err)
	}
	defer file.Close()

	return ReadDocument(file)
}

// WriteDocument writes r as a YAML recipe document.
func WriteDocument(w io.Writer, r domain.Recipe) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(FromRecipe(r)); err != nil {
		return fmt.Errorf("encoding recipe document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("closing recipe document: %w", err)
	}
	return nil
}
