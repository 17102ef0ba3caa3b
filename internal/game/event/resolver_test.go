package event_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/deadroad/internal/game/crafting"
	"github.com/cory-johannsen/deadroad/internal/game/dice"
	"github.com/cory-johannsen/deadroad/internal/game/event"
	"github.com/cory-johannsen/deadroad/internal/game/ledger"
	"github.com/cory-johannsen/deadroad/internal/game/ruleset"
	"github.com/cory-johannsen/deadroad/internal/game/survivor"
)

func newResolver(t *testing.T, led *ledger.Ledger, src dice.Source, recipeYAMLs ...string) *event.Resolver {
	t.Helper()
	reg := crafting.NewRegistry()
	for _, y := range recipeYAMLs {
		r, err := crafting.LoadRecipeFromBytes([]byte(y))
		require.NoError(t, err)
		reg.Register(r)
	}
	crafter := crafting.NewCrafter(reg, zap.NewNop())
	return event.NewResolver(led, crafter, src, zap.NewNop())
}

func plainSurvivor(name string) *survivor.Survivor {
	return survivor.New(name, survivor.Attributes{
		Strength: 5, Agility: 5, Intellect: 5, Perception: 5,
		Charisma: 5, Constitution: 5, Sanity: 4,
	})
}

func TestClassify_Tiers(t *testing.T) {
	cases := []struct {
		name   string
		roll   int
		chance float64
		want   event.Outcome
	}{
		{"plain success", 50, 50, event.Success},
		{"plain failure", 51, 50, event.Failure},
		{"critical success", 95, 100, event.CriticalSuccess},
		{"high roll below chance but under threshold", 94, 100, event.Success},
		{"critical failure", 5, 0, event.CriticalFailure},
		{"low roll that still succeeds", 5, 50, event.Success},
		{"boundary roll 100", 100, 100, event.CriticalSuccess},
		{"boundary roll 1 failing", 1, 0, event.CriticalFailure},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, event.Classify(tc.roll, tc.chance))
		})
	}
}

func TestClassify_Property_ExhaustiveAndExclusive(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		roll := rapid.IntRange(1, 100).Draw(rt, "roll")
		successChance := rapid.Float64Range(0, 100).Draw(rt, "chance")

		outcome := event.Classify(roll, successChance)

		// Exactly one tier, and criticals are subsets of their parent tiers.
		switch outcome {
		case event.CriticalSuccess:
			assert.True(rt, outcome.Succeeded())
			assert.GreaterOrEqual(rt, roll, 95)
		case event.Success:
			assert.True(rt, outcome.Succeeded())
		case event.CriticalFailure:
			assert.False(rt, outcome.Succeeded())
			assert.LessOrEqual(rt, roll, 5)
		case event.Failure:
			assert.False(rt, outcome.Succeeded())
		default:
			rt.Fatalf("unclassified outcome %v", outcome)
		}
		assert.Equal(rt, float64(roll) <= successChance, outcome.Succeeded())
	})
}

func TestResolve_SuccessAppliesRewardsAndRelief(t *testing.T) {
	led := ledger.New(zap.NewNop())
	// Roll 50 against a 50% chance succeeds without a critical.
	r := newResolver(t, led, dice.NewScriptedSource(49))
	s := plainSurvivor("Ana")
	s.GainStress(30) // SAN 4 mitigates 20%: stress becomes 24.
	require.Equal(t, 24, s.CurrentStress)

	action := &ruleset.Action{
		ID: "scavenge", Name: "Scavenge", Kind: ruleset.KindQuest,
		RequiredSurvivors: 1,
		Rewards:           map[string]int{"Food": 20, "Experience": 5},
	}

	res, err := r.Resolve([]*survivor.Survivor{s}, action, 0)
	require.NoError(t, err)
	assert.Equal(t, event.Success, res.Outcome)
	assert.Equal(t, 20, led.Quantity("Food"))
	assert.Equal(t, 0, led.Quantity("Experience"), "experience is not a ledger resource")
	assert.Equal(t, 14, s.CurrentStress, "success sheds 10 stress")
}

func TestResolve_CriticalSuccessDoublesRewards(t *testing.T) {
	led := ledger.New(zap.NewNop())
	// Scouting 9 pushes the chance past 100 (clamped); roll 95 is a
	// critical success.
	r := newResolver(t, led, dice.NewScriptedSource(94))
	s := plainSurvivor("Ana")
	s.LearnSkill("Scouting", 9)
	s.GainStress(40)
	require.Equal(t, 32, s.CurrentStress)

	action := &ruleset.Action{
		ID: "scout", Name: "Scout", Kind: ruleset.KindQuest,
		RequiredSurvivors: 1,
		RecommendedSkills: map[string]int{"Scouting": 1},
		Rewards:           map[string]int{"Food": 10},
	}

	res, err := r.Resolve([]*survivor.Survivor{s}, action, 0)
	require.NoError(t, err)
	assert.Equal(t, event.CriticalSuccess, res.Outcome)
	assert.Equal(t, 20, led.Quantity("Food"))
	assert.Equal(t, 12, s.CurrentStress, "critical success sheds 20 stress")
}

func TestResolve_FailureStacksFlatAndConsequenceStress(t *testing.T) {
	led := ledger.New(zap.NewNop())
	// Roll 51 against a 50% chance is a plain failure.
	r := newResolver(t, led, dice.NewScriptedSource(50))
	s := plainSurvivor("Ana")

	action := &ruleset.Action{
		ID: "raid", Name: "Raid", Kind: ruleset.KindQuest,
		RequiredSurvivors: 1,
		FailConsequences: map[string]float64{
			"HP_loss_per_survivor":     20,
			"Stress_gain_per_survivor": 10,
		},
	}

	res, err := r.Resolve([]*survivor.Survivor{s}, action, 0)
	require.NoError(t, err)
	assert.Equal(t, event.Failure, res.Outcome)
	// CON 5 reduces 25%: 20 raw becomes 15.
	assert.Equal(t, 75, s.CurrentHP)
	// The flat 15 failure stress stacks with the 10-point consequence by
	// design; both apply, each mitigated separately by SAN 4 (20%):
	// ceil(10*0.8)=8 plus ceil(15*0.8)=12.
	assert.Equal(t, 20, s.CurrentStress)
}

func TestResolve_CriticalFailureDoublesConsequences(t *testing.T) {
	led := ledger.New(zap.NewNop())
	// Danger 10 drops the chance to 0; roll 5 fails critically. The injury
	// check then consumes a roll of 1, which always injures at chance 100.
	r := newResolver(t, led, dice.NewScriptedSource(4, 0))
	s := plainSurvivor("Ana")

	action := &ruleset.Action{
		ID: "raid", Name: "Raid", Kind: ruleset.KindQuest,
		RequiredSurvivors: 1,
		FailConsequences: map[string]float64{
			"HP_loss_per_survivor": 20,
			"Injury_chance":        60,
		},
	}

	res, err := r.Resolve([]*survivor.Survivor{s}, action, 10)
	require.NoError(t, err)
	assert.Equal(t, event.CriticalFailure, res.Outcome)
	// Doubled to 40 raw, reduced 25% to 30.
	assert.Equal(t, 60, s.CurrentHP)
	// Doubled injury chance clamps at 100 rather than erroring.
	assert.True(t, s.Injured)
	// Flat failure stress doubled to 30, mitigated 20% to 24.
	assert.Equal(t, 24, s.CurrentStress)
}

func TestResolve_CraftedRewardConsumesInputs(t *testing.T) {
	led := ledger.New(zap.NewNop())
	led.Add("Scrap", 5)
	led.Add("ElectronicParts", 2)
	// Action roll 50 succeeds, craft success roll 1, critical roll 100.
	r := newResolver(t, led, dice.NewScriptedSource(49, 0, 99), `
id: medkit
requires:
  Scrap: 5
  ElectronicParts: 2
produces:
  item: Medkit
  quantity: 1
`)
	s := plainSurvivor("Ana")

	action := &ruleset.Action{
		ID: "craft-medkits", Name: "Craft Medkits", Kind: ruleset.KindBaseJob,
		RequiredSurvivors: 1,
		Rewards:           map[string]int{"medkit_crafted": 1},
	}

	res, err := r.Resolve([]*survivor.Survivor{s}, action, 0)
	require.NoError(t, err)
	assert.True(t, res.Outcome.Succeeded())
	assert.Equal(t, 0, led.Quantity("Scrap"), "crafting consumed the inputs")
	assert.Equal(t, 1, s.Inventory["Medkit"], "crafted item goes to the crafter")
}

func TestResolve_MultipleCraftedRewardsAreDeterministic(t *testing.T) {
	recipeA := `
id: AmmunitionA
requires:
  Scrap: 1
produces:
  resource: AmmunitionA
  quantity: 1
`
	recipeB := `
id: AmmunitionB
requires:
  Scrap: 1
produces:
  resource: AmmunitionB
  quantity: 1
`
	action := &ruleset.Action{
		ID: "restock", Name: "Restock", Kind: ruleset.KindBaseJob,
		RequiredSurvivors: 1,
		Rewards: map[string]int{
			"AmmunitionA_crafted": 1,
			"AmmunitionB_crafted": 1,
		},
	}

	// With the same roll sequence, repeated resolutions must always land the
	// failed craft on A and the successful craft on B: action roll 11
	// succeeds at 50%, A's craft roll 99 fails at 90%, B's craft roll 1
	// succeeds, B's critical roll 97 misses at 5%.
	for i := 0; i < 50; i++ {
		led := ledger.New(zap.NewNop())
		led.Add("Scrap", 2)
		r := newResolver(t, led, dice.NewScriptedSource(10, 98, 0, 96), recipeA, recipeB)
		s := plainSurvivor("Ana")

		res, err := r.Resolve([]*survivor.Survivor{s}, action, 0)
		require.NoError(t, err)
		require.True(t, res.Outcome.Succeeded())
		assert.Equal(t, 0, led.Quantity("Scrap"), "both crafts consumed their input")
		assert.Equal(t, 0, led.Quantity("AmmunitionA"), "A's craft roll failed")
		assert.Equal(t, 1, led.Quantity("AmmunitionB"), "B's craft roll succeeded")
	}
}

func TestResolve_CraftedRewardFallsBackToRawGrant(t *testing.T) {
	led := ledger.New(zap.NewNop())
	// No inputs in the ledger, so the resource check fails and no craft
	// rolls are drawn; only the action roll is scripted.
	r := newResolver(t, led, dice.NewScriptedSource(49), `
id: medkit
requires:
  Scrap: 5
produces:
  item: Medkit
  quantity: 1
`)
	s := plainSurvivor("Ana")

	action := &ruleset.Action{
		ID: "craft-medkits", Name: "Craft Medkits", Kind: ruleset.KindBaseJob,
		RequiredSurvivors: 1,
		Rewards:           map[string]int{"medkit_crafted": 2},
	}

	res, err := r.Resolve([]*survivor.Survivor{s}, action, 0)
	require.NoError(t, err)
	assert.True(t, res.Outcome.Succeeded())
	assert.Equal(t, 2, led.Quantity("medkit"), "raw grant uses the reward key's item name")
}

func TestResolve_MalformedActionErrorsBeforeMutation(t *testing.T) {
	led := ledger.New(zap.NewNop())
	r := newResolver(t, led, dice.NewScriptedSource(49))
	s := plainSurvivor("Ana")

	action := &ruleset.Action{ID: "x", Kind: ruleset.KindQuest, RequiredSurvivors: 1}

	_, err := r.Resolve([]*survivor.Survivor{s}, action, 0)
	require.Error(t, err)
	assert.Equal(t, s.MaxHP, s.CurrentHP)
	assert.Equal(t, 0, s.CurrentStress)

	_, err = r.Resolve(nil, &ruleset.Action{ID: "x", Name: "X", Kind: ruleset.KindQuest, RequiredSurvivors: 1}, 0)
	assert.Error(t, err, "no participants")
}

func TestResolve_DeadParticipantsAreInert(t *testing.T) {
	led := ledger.New(zap.NewNop())
	r := newResolver(t, led, dice.NewScriptedSource(50))
	s := plainSurvivor("Ana")
	s.TakeDamage(1000)
	require.False(t, s.Alive)

	action := &ruleset.Action{
		ID: "raid", Name: "Raid", Kind: ruleset.KindQuest,
		RequiredSurvivors: 1,
		FailConsequences:  map[string]float64{"Stress_gain_per_survivor": 10},
	}

	_, err := r.Resolve([]*survivor.Survivor{s}, action, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, s.CurrentStress)
	assert.Equal(t, 0, s.CurrentHP)
}
