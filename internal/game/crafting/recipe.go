// Package crafting converts ledger resources into items and bulk resources
// through data-driven recipes. The Mechanics skill discounts inputs and
// improves both yield and success odds.
package crafting

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const defaultBaseSuccessChance = 0.9

// Product describes what a recipe yields. Exactly one of Item or Resource is
// set: items land in a survivor's inventory when one is crafting, resources
// always land in the shared ledger.
type Product struct {
	Item     string `yaml:"item"`
	Resource string `yaml:"resource"`
	Quantity int    `yaml:"quantity"`
}

// Recipe is the loaded blueprint for a craftable.
type Recipe struct {
	ID       string         `yaml:"id"`
	Requires map[string]int `yaml:"requires"`
	Produces Product        `yaml:"produces"`
	// BaseSuccessChance is a fraction in (0,1]; zero means use the default.
	BaseSuccessChance float64 `yaml:"base_success_chance"`
}

// Validate checks the recipe for structural errors.
//
// Postcondition: Returns nil iff the recipe has an ID, exactly one product
// kind, a positive product quantity, and non-negative requirements.
func (r *Recipe) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("recipe has no id")
	}
	if (r.Produces.Item == "") == (r.Produces.Resource == "") {
		return fmt.Errorf("recipe %q must produce exactly one of item or resource", r.ID)
	}
	if r.Produces.Quantity < 1 {
		return fmt.Errorf("recipe %q produces quantity %d, must be >= 1", r.ID, r.Produces.Quantity)
	}
	for res, qty := range r.Requires {
		if qty < 0 {
			return fmt.Errorf("recipe %q requires negative quantity %d of %q", r.ID, qty, res)
		}
	}
	if r.BaseSuccessChance < 0 || r.BaseSuccessChance > 1 {
		return fmt.Errorf("recipe %q base_success_chance %v outside [0,1]", r.ID, r.BaseSuccessChance)
	}
	return nil
}

// successChance returns the recipe's base success fraction, defaulted.
func (r *Recipe) successChance() float64 {
	if r.BaseSuccessChance == 0 {
		return defaultBaseSuccessChance
	}
	return r.BaseSuccessChance
}

// LoadRecipeFromBytes parses and validates a single recipe document.
func LoadRecipeFromBytes(data []byte) (*Recipe, error) {
	var r Recipe
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("unmarshal recipe: %w", err)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// LoadRecipes reads every .yaml file in dir as one recipe each.
func LoadRecipes(dir string) ([]*Recipe, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read recipe dir %s: %w", dir, err)
	}
	var out []*Recipe
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read recipe file %s: %w", entry.Name(), err)
		}
		r, err := LoadRecipeFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("recipe file %s: %w", entry.Name(), err)
		}
		out = append(out, r)
	}
	return out, nil
}

// Registry indexes recipes by ID and, as a convenience, by produced name.
type Registry struct {
	recipes map[string]*Recipe
}

// NewRegistry returns an empty recipe registry.
func NewRegistry() *Registry {
	return &Registry{recipes: make(map[string]*Recipe)}
}

// Register adds a recipe.
//
// Precondition: r must be non-nil and valid.
func (g *Registry) Register(r *Recipe) {
	if r == nil {
		panic("crafting.Registry.Register: precondition violated: recipe must be non-nil")
	}
	if r.ID == "" {
		panic("crafting.Registry.Register: precondition violated: recipe ID must be non-empty")
	}
	g.recipes[r.ID] = r
}

// Lookup finds a recipe by ID, falling back to a scan over produced item and
// resource names so callers may ask for "Ammunition" instead of "ammo".
func (g *Registry) Lookup(id string) (*Recipe, bool) {
	if r, ok := g.recipes[id]; ok {
		return r, true
	}
	for _, r := range g.recipes {
		if r.Produces.Item == id || r.Produces.Resource == id {
			return r, true
		}
	}
	return nil, false
}
