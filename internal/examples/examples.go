// Package examples serves the bundled demonstration data set.
package examples

import (
	"embed"
	"errors"
	"fmt"
	"path"

	"gopkg.in/yaml.v3"

	"github.com/woozymasta/geoconv/internal/geo"
)

//go:embed data/index.yaml data/*.geojson
var files embed.FS

// ErrNotFound is returned for an unknown example id.
var ErrNotFound = errors.New("example not found")

// Example describes one entry of the data set.
type Example struct {
	ID          string `yaml:"id" json:"id"`
	Label       string `yaml:"label" json:"label"`
	Description string `yaml:"description" json:"description"`
	Category    string `yaml:"category" json:"category"`
	Difficulty  string `yaml:"difficulty" json:"difficulty"`
	WKT         string `yaml:"wkt,omitempty" json:"wkt,omitempty"`
}

var index []Example

func init() {
	data, err := files.ReadFile("data/index.yaml")
	if err != nil {
		panic(err)
	}
	if err := yaml.Unmarshal(data, &index); err != nil {
		panic(fmt.Sprintf("examples index: %v", err))
	}
}

// List returns the entries in display order.
func List() []Example {
	return append([]Example(nil), index...)
}

// Lookup returns the entry with the given id.
func Lookup(id string) (Example, bool) {
	for _, e := range index {
		if e.ID == id {
			return e, true
		}
	}
	return Example{}, false
}

// ByCategory returns the entries of one category in display order.
func ByCategory(category string) []Example {
	var out []Example
	for _, e := range index {
		if e.Category == category {
			out = append(out, e)
		}
	}
	return out
}

// Raw returns the structured record of an example as stored.
func Raw(id string) ([]byte, error) {
	if _, ok := Lookup(id); !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return files.ReadFile(path.Join("data", id+".geojson"))
}

// Get decodes the structured record of an example. Every call returns a
// fresh document, so callers may modify it freely.
func Get(id string) (*geo.Document, error) {
	data, err := Raw(id)
	if err != nil {
		return nil, err
	}

	doc, err := geo.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("example %s: %w", id, err)
	}
	return doc, nil
}
