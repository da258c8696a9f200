// Package seed loads event catalogues for the seed command.
package seed

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"eventbooking/internal/domain"
)

//go:embed events.yaml
var defaultCatalogue []byte

// Catalogue is the on-disk shape of a seed file.
type Catalogue struct {
	Events []domain.SeedEvent `yaml:"events"`
}

// Default returns the built-in anime event catalogue.
func Default() ([]domain.SeedEvent, error) {
	return Parse(bytes.NewReader(defaultCatalogue))
}

// Load reads a catalogue from path. An empty path yields the built-in catalogue.
func Load(path string) ([]domain.SeedEvent, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()
	events, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return events, nil
}

// Parse decodes a YAML catalogue. Unknown fields are rejected.
func Parse(r io.Reader) ([]domain.SeedEvent, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var c Catalogue
	if err := decoder.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse seed catalogue: empty document")
		}
		return nil, fmt.Errorf("parse seed catalogue: %w", err)
	}
	if len(c.Events) == 0 {
		return nil, fmt.Errorf("parse seed catalogue: no events")
	}
	return c.Events, nil
}
