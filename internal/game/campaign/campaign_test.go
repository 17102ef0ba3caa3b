package campaign_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cory-johannsen/deadroad/internal/game/campaign"
	"github.com/cory-johannsen/deadroad/internal/game/survivor"
)

func makeSurvivor(name string) *survivor.Survivor {
	return survivor.New(name, survivor.Attributes{
		Strength: 5, Agility: 5, Intellect: 5,
		Perception: 5, Charisma: 5, Constitution: 5, Sanity: 5,
	})
}

func TestNew_StartsOnDayOne(t *testing.T) {
	c := campaign.New(zap.NewNop())
	assert.Equal(t, 1, c.Day)
	require.NotNil(t, c.Ledger)
	assert.Empty(t, c.Survivors())
}

func TestAddSurvivor_NilPanics(t *testing.T) {
	c := campaign.New(zap.NewNop())
	assert.Panics(t, func() { c.AddSurvivor(nil) })
}

func TestLivingSurvivors_ExcludesDead(t *testing.T) {
	c := campaign.New(zap.NewNop())
	alive := makeSurvivor("Mara")
	dead := makeSurvivor("Jonah")
	c.AddSurvivor(alive)
	c.AddSurvivor(dead)

	dead.TakeDamage(dead.MaxHP * 2)
	require.False(t, dead.Alive)

	assert.Len(t, c.Survivors(), 2)
	living := c.LivingSurvivors()
	require.Len(t, living, 1)
	assert.Equal(t, "Mara", living[0].Name)
}

func TestAdvanceDay(t *testing.T) {
	c := campaign.New(zap.NewNop())
	c.AdvanceDay()
	c.AdvanceDay()
	assert.Equal(t, 3, c.Day)
}
