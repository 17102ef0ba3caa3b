package ruleset

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Trait defines a character quirk selectable during point-buy creation.
// Positive PointCost traits spend points; negative costs refund them.
type Trait struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	PointCost   int    `yaml:"point_cost"`
	// Conflicts lists trait names that cannot be held together with this one.
	Conflicts []string `yaml:"conflicts"`
}

// Validate checks that the trait satisfies basic invariants.
//
// Postcondition: Returns nil iff Name is non-empty.
func (t *Trait) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("trait: name must not be empty")
	}
	for _, c := range t.Conflicts {
		if c == t.Name {
			return fmt.Errorf("trait %q: must not conflict with itself", t.Name)
		}
	}
	return nil
}

// ConflictsWith reports whether the two traits exclude each other in either
// direction.
func (t *Trait) ConflictsWith(other *Trait) bool {
	for _, c := range t.Conflicts {
		if c == other.Name {
			return true
		}
	}
	for _, c := range other.Conflicts {
		if c == t.Name {
			return true
		}
	}
	return false
}

// LoadTraits parses a YAML document containing a list of traits.
//
// Postcondition: Returns validated traits or an error on the first violation.
func LoadTraits(data []byte) ([]*Trait, error) {
	var traits []*Trait
	if err := yaml.Unmarshal(data, &traits); err != nil {
		return nil, fmt.Errorf("parsing traits YAML: %w", err)
	}
	for _, t := range traits {
		if err := t.Validate(); err != nil {
			return nil, err
		}
	}
	return traits, nil
}
