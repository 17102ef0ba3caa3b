// Package ruleset defines the static game content consumed by the resolution
// engine: skills, traits, and the quest/job action descriptors. Content is
// loaded from YAML and read-only at runtime.
package ruleset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Skill defines a learnable skill with its attribute prerequisites and
// point-buy cost. Level effects beyond the success-chance bonus are content
// metadata; the probability calculator derives bonuses from level alone.
type Skill struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	// AttributePrereqs maps attribute code (e.g. "INT") to the minimum value
	// required to learn this skill.
	AttributePrereqs map[string]int `yaml:"attribute_prereqs"`
	// CostToLearn is the point cost for level 1 during character creation.
	CostToLearn int `yaml:"cost_to_learn"`
}

// Validate checks that the skill satisfies basic invariants.
//
// Postcondition: Returns nil iff Name is non-empty and CostToLearn >= 0.
func (s *Skill) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("skill: name must not be empty")
	}
	if s.CostToLearn < 0 {
		return fmt.Errorf("skill %q: cost_to_learn must be >= 0", s.Name)
	}
	for attr, v := range s.AttributePrereqs {
		if v < 1 || v > 10 {
			return fmt.Errorf("skill %q: attribute prereq %s must be in [1, 10], got %d", s.Name, attr, v)
		}
	}
	return nil
}

// LoadSkills parses a YAML document containing a list of skills.
//
// Postcondition: Returns validated skills or an error on the first violation.
func LoadSkills(data []byte) ([]*Skill, error) {
	var skills []*Skill
	if err := yaml.Unmarshal(data, &skills); err != nil {
		return nil, fmt.Errorf("parsing skills YAML: %w", err)
	}
	for _, s := range skills {
		if err := s.Validate(); err != nil {
			return nil, err
		}
	}
	return skills, nil
}

// yamlFiles lists all *.yaml files directly inside dir.
func yamlFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading content dir %q: %w", dir, err)
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	return paths, nil
}
