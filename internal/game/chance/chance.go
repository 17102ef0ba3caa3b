// Package chance computes success percentages for group actions and combat
// attacks. Every function here is pure: no rolls, no mutation, no logging.
// Callers hand the clamped result to a dice roll for resolution.
package chance

import (
	"github.com/cory-johannsen/deadroad/internal/game/horde"
	"github.com/cory-johannsen/deadroad/internal/game/ruleset"
	"github.com/cory-johannsen/deadroad/internal/game/survivor"
)

// Tuning constants for action and combat resolution.
const (
	BaseSuccessChance      = 50.0
	SkillBonusPerLevel     = 5.0
	AttributeBonusPerPoint = 2.0
	DangerPenaltyPerLevel  = 5.0

	SurvivorBaseHitChance  = 70.0
	ZombieBaseHitChance    = 50.0
	SkillHitBonusPerLevel  = 5.0
	AttributeHitBonus      = 2.0
	FogSurvivorPenalty     = 15.0
	FogZombieStealthBonus  = 20.0
	DefenseHitPenaltyScale = 0.5
)

// Conditions carries named environment flags into hit-chance calculations.
// A missing key reads as false.
type Conditions map[string]bool

// Fog is the environment flag that degrades visibility during combat.
const Fog = "Fog"

// Clamp bounds a computed chance to [0,100]. Clamping applies to computed
// results only; input validation rejects out-of-range arguments instead.
func Clamp(chance float64) float64 {
	if chance < 0 {
		return 0
	}
	if chance > 100 {
		return 100
	}
	return chance
}

// ActionSuccessChance computes the combined success chance for a group of
// survivors attempting an action.
//
// Starting from a base of 50, each participant contributes 5% per level of
// every recommended skill they hold, plus an attribute bonus keyed off which
// skills the action recommends. Danger subtracts 5% per level.
//
// Postcondition: Result is in [0,100].
func ActionSuccessChance(participants []*survivor.Survivor, action *ruleset.Action, danger int) float64 {
	if action == nil {
		panic("chance.ActionSuccessChance: precondition violated: action must be non-nil")
	}
	chance := BaseSuccessChance
	for _, s := range participants {
		for skillName := range action.RecommendedSkills {
			if level, ok := s.Skills[skillName]; ok {
				chance += float64(level) * SkillBonusPerLevel
			}
		}
		chance += attributeBonus(s, action.RecommendedSkills)
	}
	chance -= float64(danger) * DangerPenaltyPerLevel
	return Clamp(chance)
}

// attributeBonus maps the recommended skill set to a coarse attribute
// contribution. Actions recommending skills outside this lookup get no
// attribute bonus.
func attributeBonus(s *survivor.Survivor, recommended map[string]int) float64 {
	var bonus float64
	if hasAny(recommended, "Perception", "Scouting") {
		bonus += float64(s.Attributes.Perception) * AttributeBonusPerPoint
	}
	if hasAny(recommended, "Small Arms", "Melee Weaponry") {
		bonus += float64(s.Attributes.Agility+s.Attributes.Strength) / 2 * AttributeBonusPerPoint
	}
	if hasAny(recommended, "Mechanics", "Electronics") {
		bonus += float64(s.Attributes.Intellect) * AttributeBonusPerPoint
	}
	return bonus
}

func hasAny(recommended map[string]int, names ...string) bool {
	for _, n := range names {
		if _, ok := recommended[n]; ok {
			return true
		}
	}
	return false
}

// SurvivorHitChance computes the chance for a survivor to strike a zombie.
//
// Skilled shooters ride Small Arms and agility; melee fighters ride Melee
// Weaponry and strength; the unskilled fall back to a halved average of the
// two attributes. The target's defense and fog both degrade the result.
//
// Postcondition: Result is in [0,100].
func SurvivorHitChance(attacker *survivor.Survivor, target *horde.Instance, conditions Conditions) float64 {
	chance := SurvivorBaseHitChance
	if lvl := attacker.Skills["Small Arms"]; lvl > 0 {
		chance += float64(lvl) * SkillHitBonusPerLevel
		chance += float64(attacker.Attributes.Agility) * AttributeHitBonus
	} else if lvl := attacker.Skills["Melee Weaponry"]; lvl > 0 {
		chance += float64(lvl) * SkillHitBonusPerLevel
		chance += float64(attacker.Attributes.Strength) * AttributeHitBonus
	} else {
		chance += float64(attacker.Attributes.Agility+attacker.Attributes.Strength) / 2 * (AttributeHitBonus / 2)
	}
	chance -= float64(target.Defense) * DefenseHitPenaltyScale
	if conditions[Fog] {
		chance -= FogSurvivorPenalty
	}
	return Clamp(chance)
}

// ZombieHitChance computes the chance for a zombie to strike a survivor.
//
// Agile survivors dodge; stealthy survivors are harder to find in fog. The
// fog penalty applies only against targets with Stealth above zero, so fog
// is asymmetric between the two attacker types.
//
// Postcondition: Result is in [0,100].
func ZombieHitChance(attacker *horde.Instance, target *survivor.Survivor, conditions Conditions) float64 {
	chance := ZombieBaseHitChance
	chance -= float64(target.Attributes.Agility) * 2
	if conditions[Fog] && target.Skills["Stealth"] > 0 {
		chance -= FogZombieStealthBonus
	}
	return Clamp(chance)
}
