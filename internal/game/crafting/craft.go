package crafting

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/deadroad/internal/game/dice"
	"github.com/cory-johannsen/deadroad/internal/game/ledger"
	"github.com/cory-johannsen/deadroad/internal/game/survivor"
)

// Mechanics skill modifiers.
const (
	successBonusPerLevel = 0.03
	maxSuccessChance     = 0.99
	baseCritChance       = 0.05
	critBonusPerLevel    = 0.02
	maxCritChance        = 0.5
)

// Result reports the outcome of a craft attempt.
type Result struct {
	Success          bool
	ProducedQuantity int
	// Consumed maps resource name to the amount debited from the ledger.
	// Consumption happens before the success roll, so a failed attempt can
	// still report consumed resources.
	Consumed map[string]int
}

// Crafter executes recipes against the shared ledger.
type Crafter struct {
	recipes *Registry
	logger  *zap.Logger
}

// NewCrafter wires a recipe registry to a logger.
//
// Precondition: recipes and logger must be non-nil.
func NewCrafter(recipes *Registry, logger *zap.Logger) *Crafter {
	if recipes == nil {
		panic("crafting.NewCrafter: precondition violated: recipes must be non-nil")
	}
	return &Crafter{recipes: recipes, logger: logger}
}

// Craft attempts to produce quantity batches of the named recipe.
//
// The crafter's Mechanics level discounts every per-batch requirement (floor
// zero), adds a flat bonus to the produced quantity, and raises the success
// and critical chances. Insufficient resources fail without any mutation.
// Resources are consumed before the roll; a failed roll wastes them. Items go
// to the crafter's inventory if one is present, otherwise to the ledger;
// resources always go to the ledger.
//
// Precondition: quantity >= 1. crafter may be nil (no skill discount, items
// land in the ledger).
// Postcondition: Result.Success false implies ProducedQuantity == 0.
func (c *Crafter) Craft(led *ledger.Ledger, recipeID string, quantity int, crafter *survivor.Survivor, src dice.Source) (Result, error) {
	if quantity < 1 {
		return Result{}, fmt.Errorf("craft quantity must be >= 1, got %d", quantity)
	}
	recipe, ok := c.recipes.Lookup(recipeID)
	if !ok {
		return Result{}, fmt.Errorf("unknown recipe %q", recipeID)
	}

	mechLevel := 0
	if crafter != nil {
		mechLevel = crafter.SkillLevel("Mechanics")
	}

	required := make(map[string]int, len(recipe.Requires))
	for res, perBatch := range recipe.Requires {
		discounted := perBatch - mechLevel
		if discounted < 0 {
			discounted = 0
		}
		required[res] = discounted * quantity
	}

	for res, amt := range required {
		if led.Quantity(res) < amt {
			c.logger.Debug("craft refused, insufficient resources",
				zap.String("recipe", recipe.ID),
				zap.String("resource", res),
				zap.Int("required", amt),
				zap.Int("available", led.Quantity(res)),
			)
			return Result{Consumed: map[string]int{}}, nil
		}
	}

	consumed := make(map[string]int)
	for res, amt := range required {
		if amt > 0 {
			led.Remove(res, amt)
			consumed[res] = amt
		}
	}

	produced := recipe.Produces.Quantity*quantity + mechLevel

	successChance := recipe.successChance() + successBonusPerLevel*float64(mechLevel)
	if successChance > maxSuccessChance {
		successChance = maxSuccessChance
	}
	success, err := dice.ChanceCheck(successChance*100, src)
	if err != nil {
		return Result{}, fmt.Errorf("craft success roll: %w", err)
	}
	if !success {
		c.logger.Info("craft failed, resources wasted",
			zap.String("recipe", recipe.ID),
			zap.Any("consumed", consumed),
		)
		return Result{Consumed: consumed}, nil
	}

	critChance := baseCritChance + critBonusPerLevel*float64(mechLevel)
	if critChance > maxCritChance {
		critChance = maxCritChance
	}
	critical, err := dice.ChanceCheck(critChance*100, src)
	if err != nil {
		return Result{}, fmt.Errorf("craft critical roll: %w", err)
	}
	if critical {
		produced *= 2
	}

	switch {
	case recipe.Produces.Item != "" && crafter != nil:
		crafter.AddItem(recipe.Produces.Item, produced)
	case recipe.Produces.Item != "":
		led.Add(recipe.Produces.Item, produced)
	default:
		led.Add(recipe.Produces.Resource, produced)
	}

	c.logger.Info("craft succeeded",
		zap.String("recipe", recipe.ID),
		zap.Int("produced", produced),
		zap.Bool("critical", critical),
	)
	return Result{Success: true, ProducedQuantity: produced, Consumed: consumed}, nil
}
