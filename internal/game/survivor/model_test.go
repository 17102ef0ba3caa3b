package survivor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/deadroad/internal/game/survivor"
)

func allFives() survivor.Attributes {
	return survivor.Attributes{
		Strength: 5, Agility: 5, Intellect: 5, Perception: 5,
		Charisma: 5, Constitution: 5, Sanity: 5,
	}
}

func TestNew_PoolsDerivedFromAttributes(t *testing.T) {
	s := survivor.New("Alice", survivor.Attributes{
		Strength: 5, Agility: 6, Intellect: 7, Perception: 8,
		Charisma: 5, Constitution: 7, Sanity: 6,
	})
	assert.Equal(t, 110, s.MaxHP) // 40 + 10*7
	assert.Equal(t, 110, s.CurrentHP)
	assert.Equal(t, 100, s.MaxStress) // 40 + 10*6
	assert.Equal(t, 0, s.CurrentStress)
	assert.True(t, s.Alive)
}

func TestNew_ClampsAttributes(t *testing.T) {
	s := survivor.New("X", survivor.Attributes{Strength: 0, Agility: 15, Constitution: -3, Sanity: 11})
	assert.Equal(t, 1, s.Attributes.Strength)
	assert.Equal(t, 10, s.Attributes.Agility)
	assert.Equal(t, 1, s.Attributes.Constitution)
	assert.Equal(t, 10, s.Attributes.Sanity)
}

// A Constitution 7 survivor reduces incoming damage by 35%, so 50 raw damage
// lands as ceil(50*0.65) = 33 and leaves 77/110 health: above the injury line.
func TestTakeDamage_ConstitutionReduction(t *testing.T) {
	attrs := allFives()
	attrs.Constitution = 7
	s := survivor.New("Brock", attrs)
	assert.Equal(t, 110, s.MaxHP)

	s.TakeDamage(50)
	assert.Equal(t, 77, s.CurrentHP)
	assert.False(t, s.IsInjured())
	assert.True(t, s.Alive)
}

func TestTakeDamage_ReductionCapsAtFifty(t *testing.T) {
	attrs := allFives()
	attrs.Constitution = 10
	s := survivor.New("Tank", attrs)
	s.TakeDamage(100) // 50% cap, not 50%+
	assert.Equal(t, s.MaxHP-50, s.CurrentHP)
}

func TestTakeDamage_LethalDamageMarksDead(t *testing.T) {
	s := survivor.New("Doomed", allFives())
	s.TakeDamage(1000)
	assert.Equal(t, 0, s.CurrentHP)
	assert.False(t, s.Alive)
}

func TestDeadSurvivor_IsInert(t *testing.T) {
	s := survivor.New("Ghost", allFives())
	s.TakeDamage(10000)
	assert.False(t, s.Alive)

	s.TakeDamage(10)
	s.GainStress(10)
	s.ReduceStress(10)
	s.Heal(10)

	assert.Equal(t, 0, s.CurrentHP)
	assert.Equal(t, 0, s.CurrentStress)
	assert.False(t, s.Alive)
}

func TestDeadSurvivor_Property_MutationNeverChangesState(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := survivor.New("Ghost", allFives())
		s.TakeDamage(100000)
		hp, stress, alive := s.CurrentHP, s.CurrentStress, s.Alive

		amount := rapid.IntRange(-100, 1000).Draw(rt, "amount")
		switch rapid.IntRange(0, 3).Draw(rt, "op") {
		case 0:
			s.TakeDamage(amount)
		case 1:
			s.GainStress(amount)
		case 2:
			s.ReduceStress(amount)
		case 3:
			s.Heal(amount)
		}
		assert.Equal(rt, hp, s.CurrentHP)
		assert.Equal(rt, stress, s.CurrentStress)
		assert.Equal(rt, alive, s.Alive)
	})
}

func TestGainStress_SanityMitigationAndCap(t *testing.T) {
	attrs := allFives()
	attrs.Sanity = 4 // 20% mitigation, max stress 80
	s := survivor.New("Nervy", attrs)

	s.GainStress(30) // ceil(30*0.8) = 24
	assert.Equal(t, 24, s.CurrentStress)

	s.GainStress(1000)
	assert.Equal(t, s.MaxStress, s.CurrentStress)
	assert.True(t, s.IsStressed())
}

func TestReduceStress_FloorsAtZero(t *testing.T) {
	s := survivor.New("Calm", allFives())
	s.GainStress(20)
	s.ReduceStress(1000)
	assert.Equal(t, 0, s.CurrentStress)
}

func TestHeal_CapsAtMax(t *testing.T) {
	s := survivor.New("Patch", allFives())
	s.TakeDamage(40)
	s.Heal(1000)
	assert.Equal(t, s.MaxHP, s.CurrentHP)
}

func TestIsInjured_ExplicitFlagOrLowHealth(t *testing.T) {
	s := survivor.New("Flag", allFives())
	assert.False(t, s.IsInjured())

	s.Injured = true
	assert.True(t, s.IsInjured())

	s.Injured = false
	s.CurrentHP = s.MaxHP/2 - 1
	assert.True(t, s.IsInjured())
}

func TestInventory_RemoveInsufficientLeavesUnchanged(t *testing.T) {
	s := survivor.New("Pack", allFives())
	s.AddItem("Medkit", 2)
	assert.False(t, s.RemoveItem("Medkit", 3))
	assert.Equal(t, 2, s.Inventory["Medkit"])
	assert.True(t, s.RemoveItem("Medkit", 2))
	assert.Equal(t, 0, s.Inventory["Medkit"])
}

func TestSkillLevels_UncappedAndNonNegative(t *testing.T) {
	s := survivor.New("Sage", allFives())
	s.LearnSkill("Mechanics", 12)
	assert.Equal(t, 12, s.SkillLevel("Mechanics"))
	s.LearnSkill("Mechanics", -1)
	assert.Equal(t, 0, s.SkillLevel("Mechanics"))
	assert.Equal(t, 0, s.SkillLevel("Unknown"))
}
