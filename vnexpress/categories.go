package vnexpress

import (
	_ "embed"
	"fmt"

	"github.com/ethanol1310/hotnews"
	"gopkg.in/yaml.v3"
)

//go:embed categories.yaml
var categoriesYAML []byte

// Category is a VnExpress listing category.
type Category struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// DefaultCategories returns the built-in category catalog.
func DefaultCategories() ([]Category, error) {
	return ParseCategories(categoriesYAML)
}

// ParseCategories decodes a YAML category list.
// Every category must have an ID, and IDs must be unique.
func ParseCategories(data []byte) ([]Category, error) {
	var categories []Category
	if err := yaml.Unmarshal(data, &categories); err != nil {
		return nil, fmt.Errorf("parse categories: %w", err)
	}

	seen := make(map[string]bool, len(categories))
	for i, c := range categories {
		if c.ID == "" {
			return nil, hotnews.Errorf(hotnews.EINVALID, "category %d has no id", i)
		}
		if seen[c.ID] {
			return nil, hotnews.Errorf(hotnews.EINVALID, "duplicate category id %s", c.ID)
		}
		seen[c.ID] = true
	}
	return categories, nil
}
