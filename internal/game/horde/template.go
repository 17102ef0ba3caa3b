// Package horde provides zombie template definitions and live encounter
// instance management.
package horde

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Template defines a reusable zombie archetype loaded from YAML.
//
// Templates are immutable blueprints: encounters must spawn fresh Instances
// and never mutate or share a Template's state.
type Template struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	BaseHP      int    `yaml:"base_hp"`
	Damage      int    `yaml:"damage"`
	// Speed is advisory: it does not affect turn order in the current
	// simulator.
	Speed int `yaml:"speed"`
	// Defense reduces an attacker's hit chance by half a point per point.
	Defense int `yaml:"defense"`
	// Traits are advisory tags (e.g. "Fast", "ExplodesOnDeath") with no
	// wired combat effect yet.
	Traits []string `yaml:"traits"`
}

// Validate checks that the template satisfies basic invariants.
//
// Precondition: t must not be nil.
// Postcondition: Returns nil iff ID and Name are non-empty, BaseHP >= 1,
// Damage >= 0, and Defense >= 0.
func (t *Template) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("zombie template: id must not be empty")
	}
	if t.Name == "" {
		return fmt.Errorf("zombie template %q: name must not be empty", t.ID)
	}
	if t.BaseHP < 1 {
		return fmt.Errorf("zombie template %q: base_hp must be >= 1", t.ID)
	}
	if t.Damage < 0 {
		return fmt.Errorf("zombie template %q: damage must be >= 0", t.ID)
	}
	if t.Defense < 0 {
		return fmt.Errorf("zombie template %q: defense must be >= 0", t.ID)
	}
	return nil
}

// LoadTemplateFromBytes parses a single zombie template from raw YAML bytes.
//
// Postcondition: Returns a validated *Template, or an error.
func LoadTemplateFromBytes(data []byte) (*Template, error) {
	var tmpl Template
	if err := yaml.Unmarshal(data, &tmpl); err != nil {
		return nil, fmt.Errorf("parsing zombie template YAML: %w", err)
	}
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// LoadTemplates reads all *.yaml files in dir and returns the parsed templates.
//
// Postcondition: Returns all templates or an error on the first parse or
// validate failure; on error, the partial result is discarded.
func LoadTemplates(dir string) ([]*Template, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading zombie dir %q: %w", dir, err)
	}
	var templates []*Template
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		tmpl, err := LoadTemplateFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		templates = append(templates, tmpl)
	}
	return templates, nil
}
