package survivor

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/deadroad/internal/game/ruleset"
)

// Point-buy constants for survivor creation.
const (
	// StartingPointsPool is the budget shared across attributes, traits, and skills.
	StartingPointsPool = 50
	// attributeCostThreshold: raising an attribute below this value costs 1 point.
	attributeCostThreshold = 7
	// attributeCostHigh: raising an attribute at or above the threshold costs this much.
	attributeCostHigh = 2
	// skillCostLevel1 is the point cost to learn level 1 of any skill.
	skillCostLevel1 = 4
)

// Builder accumulates point-buy choices and produces a Survivor.
// It is the non-interactive core of character creation; any UI drives it.
type Builder struct {
	name       string
	pool       int
	attributes map[string]int
	traits     []*ruleset.Trait
	skills     map[string]int
}

// NewBuilder starts a build with the standard point pool and all attributes at 1.
//
// Precondition: name must be non-empty.
func NewBuilder(name string) (*Builder, error) {
	if name == "" {
		return nil, errors.New("survivor name must not be empty")
	}
	attrs := make(map[string]int, 7)
	for _, code := range []string{AttrStrength, AttrAgility, AttrIntellect, AttrPerception, AttrCharisma, AttrConstitution, AttrSanity} {
		attrs[code] = 1
	}
	return &Builder{
		name:       name,
		pool:       StartingPointsPool,
		attributes: attrs,
		skills:     make(map[string]int),
	}, nil
}

// PointsRemaining returns the unspent point budget.
func (b *Builder) PointsRemaining() int { return b.pool }

// RaiseAttribute increases the named attribute by one point. Cost is 1 below
// the high threshold and 2 at or above it; attributes cap at 10.
//
// Postcondition: Returns nil iff the attribute was raised and points deducted.
func (b *Builder) RaiseAttribute(code string) error {
	current, ok := b.attributes[code]
	if !ok {
		return fmt.Errorf("unknown attribute %q", code)
	}
	if current >= 10 {
		return fmt.Errorf("attribute %s is already at maximum (10)", code)
	}
	cost := 1
	if current >= attributeCostThreshold {
		cost = attributeCostHigh
	}
	if b.pool < cost {
		return fmt.Errorf("not enough points to raise %s: need %d, have %d", code, cost, b.pool)
	}
	b.attributes[code] = current + 1
	b.pool -= cost
	return nil
}

// AddTrait selects a trait, deducting its point cost (negative costs refund
// points). Conflicting or duplicate traits are rejected.
//
// Precondition: t must be non-nil and validated.
func (b *Builder) AddTrait(t *ruleset.Trait) error {
	if t == nil {
		return errors.New("trait must not be nil")
	}
	for _, held := range b.traits {
		if held.Name == t.Name {
			return fmt.Errorf("trait %q already selected", t.Name)
		}
		if held.ConflictsWith(t) {
			return fmt.Errorf("trait %q conflicts with selected trait %q", t.Name, held.Name)
		}
	}
	if b.pool < t.PointCost {
		return fmt.Errorf("not enough points for trait %q: need %d, have %d", t.Name, t.PointCost, b.pool)
	}
	b.traits = append(b.traits, t)
	b.pool -= t.PointCost
	return nil
}

// RemoveTrait deselects a previously added trait and refunds its cost.
func (b *Builder) RemoveTrait(name string) error {
	for i, held := range b.traits {
		if held.Name == name {
			b.traits = append(b.traits[:i], b.traits[i+1:]...)
			b.pool += held.PointCost
			return nil
		}
	}
	return fmt.Errorf("trait %q not selected", name)
}

// LearnSkill learns level 1 of the given skill, checking its attribute
// prerequisites against the current attribute spread.
//
// Precondition: sk must be non-nil and validated.
func (b *Builder) LearnSkill(sk *ruleset.Skill) error {
	if sk == nil {
		return errors.New("skill must not be nil")
	}
	if _, ok := b.skills[sk.Name]; ok {
		return fmt.Errorf("skill %q already learned", sk.Name)
	}
	for attr, req := range sk.AttributePrereqs {
		if b.attributes[attr] < req {
			return fmt.Errorf("skill %q requires %s >= %d, have %d", sk.Name, attr, req, b.attributes[attr])
		}
	}
	if b.pool < skillCostLevel1 {
		return fmt.Errorf("not enough points for skill %q: need %d, have %d", sk.Name, skillCostLevel1, b.pool)
	}
	b.skills[sk.Name] = 1
	b.pool -= skillCostLevel1
	return nil
}

// Build finalizes the survivor with the accumulated attributes, traits, and
// skills.
//
// Postcondition: Returns a living survivor with full health and zero stress.
func (b *Builder) Build() *Survivor {
	s := New(b.name, Attributes{
		Strength:     b.attributes[AttrStrength],
		Agility:      b.attributes[AttrAgility],
		Intellect:    b.attributes[AttrIntellect],
		Perception:   b.attributes[AttrPerception],
		Charisma:     b.attributes[AttrCharisma],
		Constitution: b.attributes[AttrConstitution],
		Sanity:       b.attributes[AttrSanity],
	})
	for _, t := range b.traits {
		s.AddTrait(t.Name)
	}
	for name, level := range b.skills {
		s.LearnSkill(name, level)
	}
	return s
}
