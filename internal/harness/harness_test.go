package harness_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cory-johannsen/deadroad/internal/game/dice"
	"github.com/cory-johannsen/deadroad/internal/game/horde"
	"github.com/cory-johannsen/deadroad/internal/game/survivor"
	"github.com/cory-johannsen/deadroad/internal/harness"
)

func aceParty() []*survivor.Survivor {
	s := survivor.New("Ace", survivor.Attributes{
		Strength: 5, Agility: 10, Intellect: 5, Perception: 5,
		Charisma: 5, Constitution: 5, Sanity: 5,
	})
	s.LearnSkill("Small Arms", 10)
	return []*survivor.Survivor{s}
}

func harmlessPack() []*horde.Instance {
	tmpl := &horde.Template{ID: "husk", Name: "Husk", BaseHP: 1, Damage: 0}
	return []*horde.Instance{horde.Spawn(tmpl), horde.Spawn(tmpl)}
}

func TestRunCombatSimulations_GuaranteedWins(t *testing.T) {
	m, err := harness.RunCombatSimulations(harness.Config{
		Runs:   20,
		Party:  aceParty,
		Pack:   harmlessPack,
		Danger: 1,
	}, dice.NewSeededSource(1), zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, 20, m.Runs)
	assert.Equal(t, 20, m.Victories)
	assert.Equal(t, 1.0, m.WinRate)
	assert.Equal(t, 0.0, m.AvgSurvivorDeaths)
	assert.Greater(t, m.AvgRounds, 0.0)
}

func TestRunCombatSimulations_CountsDeaths(t *testing.T) {
	doomedParty := func() []*survivor.Survivor {
		return []*survivor.Survivor{survivor.New("Doomed", survivor.Attributes{
			Strength: 1, Agility: 1, Intellect: 1, Perception: 1,
			Charisma: 1, Constitution: 1, Sanity: 1,
		})}
	}
	lethalPack := func() []*horde.Instance {
		tmpl := &horde.Template{ID: "brute", Name: "Brute", BaseHP: 1000, Damage: 1000, Defense: 200}
		return []*horde.Instance{horde.Spawn(tmpl), horde.Spawn(tmpl)}
	}

	m, err := harness.RunCombatSimulations(harness.Config{
		Runs:   10,
		Party:  doomedParty,
		Pack:   lethalPack,
		Danger: 1,
	}, dice.NewSeededSource(2), zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, 10, m.Defeats)
	assert.Equal(t, 0.0, m.WinRate)
	assert.Equal(t, 1.0, m.AvgSurvivorDeaths)
}

func TestRunCombatSimulations_Reproducible(t *testing.T) {
	run := func() harness.Metrics {
		m, err := harness.RunCombatSimulations(harness.Config{
			Runs: 15,
			Party: func() []*survivor.Survivor {
				return []*survivor.Survivor{survivor.New("S", survivor.Attributes{
					Strength: 5, Agility: 5, Intellect: 5, Perception: 5,
					Charisma: 5, Constitution: 5, Sanity: 5,
				})}
			},
			Pack: func() []*horde.Instance {
				tmpl := &horde.Template{ID: "w", Name: "W", BaseHP: 30, Damage: 10}
				return []*horde.Instance{horde.Spawn(tmpl)}
			},
			Danger: 2,
		}, dice.NewSeededSource(7), zap.NewNop())
		require.NoError(t, err)
		return m
	}

	assert.Equal(t, run(), run())
}

func TestRunCombatSimulations_ConfigValidation(t *testing.T) {
	_, err := harness.RunCombatSimulations(harness.Config{Runs: 0}, dice.NewSeededSource(1), zap.NewNop())
	assert.Error(t, err)

	_, err = harness.RunCombatSimulations(harness.Config{Runs: 1}, dice.NewSeededSource(1), zap.NewNop())
	assert.Error(t, err, "missing factories")
}
