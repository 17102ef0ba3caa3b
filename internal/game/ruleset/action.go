package ruleset

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ActionKind distinguishes expedition quests from stay-at-base jobs.
type ActionKind int

const (
	KindQuest ActionKind = iota
	KindBaseJob
)

// String returns a human-readable kind label.
func (k ActionKind) String() string {
	switch k {
	case KindQuest:
		return "quest"
	case KindBaseJob:
		return "base_job"
	default:
		return "unknown"
	}
}

// Action is the descriptor for a resolvable group action. Quests and base
// jobs share this structure; base jobs always require exactly one survivor.
//
// Actions are static content: read-only at runtime, consumed but never owned
// by the resolver.
type Action struct {
	ID          string     `yaml:"id"`
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Kind        ActionKind `yaml:"-"`
	// RequiredSurvivors is the minimum participant count. Fixed at 1 for
	// base jobs.
	RequiredSurvivors int `yaml:"required_survivors"`
	// RecommendedSkills maps skill name to the recommended level. Advisory:
	// used only for success-chance bonuses, never as a hard gate.
	RecommendedSkills map[string]int `yaml:"recommended_skills"`
	// Danger is the danger/risk rating. Each point subtracts 5% success.
	Danger int `yaml:"danger"`
	// Rewards maps resource or special key to quantity. Special keys:
	// "Experience" (log-only placeholder) and "<Item>_crafted" (crafting path).
	Rewards map[string]int `yaml:"rewards"`
	// FailConsequences maps effect key to magnitude. Interpreted keys:
	// HP_loss_per_survivor, Stress_gain_per_survivor, Injury_chance.
	FailConsequences map[string]float64 `yaml:"fail_consequences"`
}

// Validate checks the structural invariants of an action descriptor.
// A malformed descriptor is a configuration error: fail fast, never guess.
//
// Postcondition: Returns nil iff ID and Name are non-empty,
// RequiredSurvivors >= 1, and Danger >= 0.
func (a *Action) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("action: id must not be empty")
	}
	if a.Name == "" {
		return fmt.Errorf("action %q: name must not be empty", a.ID)
	}
	if a.RequiredSurvivors < 1 {
		return fmt.Errorf("action %q: required_survivors must be >= 1, got %d", a.ID, a.RequiredSurvivors)
	}
	if a.Danger < 0 {
		return fmt.Errorf("action %q: danger must be >= 0, got %d", a.ID, a.Danger)
	}
	for key, v := range a.FailConsequences {
		if v < 0 {
			return fmt.Errorf("action %q: fail consequence %s must be >= 0, got %v", a.ID, key, v)
		}
	}
	return nil
}

// LoadActionFromBytes parses a single action descriptor of the given kind.
// Base jobs have RequiredSurvivors forced to 1.
//
// Postcondition: Returns a validated *Action, or an error.
func LoadActionFromBytes(data []byte, kind ActionKind) (*Action, error) {
	var a Action
	if err := yaml.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("parsing action YAML: %w", err)
	}
	a.Kind = kind
	if kind == KindBaseJob {
		a.RequiredSurvivors = 1
	} else if a.RequiredSurvivors == 0 {
		a.RequiredSurvivors = 1
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &a, nil
}

// LoadActions reads all *.yaml files in dir and parses each as one action of
// the given kind.
//
// Postcondition: Returns all actions or an error on the first parse or
// validate failure; on error, the partial result is discarded.
func LoadActions(dir string, kind ActionKind) ([]*Action, error) {
	paths, err := yamlFiles(dir)
	if err != nil {
		return nil, err
	}
	var actions []*Action
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		a, err := LoadActionFromBytes(data, kind)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		actions = append(actions, a)
	}
	return actions, nil
}
