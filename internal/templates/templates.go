// Package templates resolves symbolic message keys into user-facing text.
//
// The catalog is an embedded YAML document of section → key → text.
// Substitution placeholders use {name} syntax.
package templates

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var catalogYAML []byte

// Catalog is a loaded message catalog.
type Catalog struct {
	sections map[string]map[string]string
}

// Load parses the embedded catalog.
func Load() (*Catalog, error) {
	return Parse(catalogYAML)
}

// Parse builds a catalog from raw YAML.
func Parse(raw []byte) (*Catalog, error) {
	sections := make(map[string]map[string]string)
	if err := yaml.Unmarshal(raw, &sections); err != nil {
		return nil, fmt.Errorf("failed to parse message catalog: %w", err)
	}
	return &Catalog{sections: sections}, nil
}

// Render resolves a (section, key) pair and substitutes {placeholder}
// occurrences from data. Unknown keys render as "section.key" so a
// missing template is visible rather than silent.
func (c *Catalog) Render(section, key string, data map[string]string) string {
	text, ok := c.sections[section][key]
	if !ok {
		return section + "." + key
	}

	if len(data) == 0 {
		return text
	}

	pairs := make([]string, 0, len(data)*2)
	for name, value := range data {
		pairs = append(pairs, "{"+name+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(text)
}
