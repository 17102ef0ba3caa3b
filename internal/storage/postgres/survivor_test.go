package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/deadroad/internal/game/snapshot"
	"github.com/cory-johannsen/deadroad/internal/game/survivor"
	"github.com/cory-johannsen/deadroad/internal/storage/postgres"
	"github.com/cory-johannsen/deadroad/internal/testutil"
)

func setupSurvivorRepo(t *testing.T) (*postgres.SurvivorRepository, int64) {
	t.Helper()
	pool := testutil.NewPool(t)
	campRepo := postgres.NewCampaignRepository(pool)
	camp, err := campRepo.Create(context.Background(), uniqueName("campaign"), 1, nil)
	require.NoError(t, err)
	return postgres.NewSurvivorRepository(pool), camp.ID
}

func makeTestRecord(name string) snapshot.SurvivorRecord {
	s := survivor.New(name, survivor.Attributes{
		Strength: 6, Agility: 5, Intellect: 4,
		Perception: 5, Charisma: 3, Constitution: 6, Sanity: 5,
	})
	s.LearnSkill("Small Arms", 3)
	s.LearnSkill("Scouting", 2)
	s.AddTrait("Brave")
	s.AddItem("Crowbar", 1)
	return snapshot.FromSurvivor(s)
}

func TestSurvivorRepository_Create(t *testing.T) {
	repo, campaignID := setupSurvivorRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, campaignID, makeTestRecord("Mara"))
	require.NoError(t, err)

	assert.Greater(t, created.ID, int64(0))
	assert.Equal(t, campaignID, created.CampaignID)
	assert.Equal(t, "Mara", created.Record.Name)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestSurvivorRepository_DuplicateNameError(t *testing.T) {
	repo, campaignID := setupSurvivorRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, campaignID, makeTestRecord("Mara"))
	require.NoError(t, err)

	_, err = repo.Create(ctx, campaignID, makeTestRecord("Mara"))
	require.Error(t, err)
	assert.ErrorIs(t, err, postgres.ErrSurvivorNameTaken)
}

func TestSurvivorRepository_RoundTrip(t *testing.T) {
	repo, campaignID := setupSurvivorRepo(t)
	ctx := context.Background()

	rec := makeTestRecord("Mara")
	created, err := repo.Create(ctx, campaignID, rec)
	require.NoError(t, err)

	got, err := repo.GetByName(ctx, campaignID, "Mara")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, rec.Attributes, got.Record.Attributes)
	assert.Equal(t, rec.Skills, got.Record.Skills)
	assert.ElementsMatch(t, rec.Traits, got.Record.Traits)
	assert.Equal(t, rec.Inventory, got.Record.Inventory)
	assert.Equal(t, rec.MaxHP, got.Record.MaxHP)
	assert.Equal(t, rec.CurrentHP, got.Record.CurrentHP)
	assert.Equal(t, rec.MaxStress, got.Record.MaxStress)
	assert.Equal(t, rec.CurrentStress, got.Record.CurrentStress)
	assert.True(t, got.Record.Alive)
	assert.False(t, got.Record.Injured)

	// The persisted row must rebuild into a working survivor.
	s, err := got.Record.ToSurvivor()
	require.NoError(t, err)
	assert.Equal(t, 3, s.SkillLevel("Small Arms"))
	assert.True(t, s.HasTrait("Brave"))
}

func TestSurvivorRepository_Save(t *testing.T) {
	repo, campaignID := setupSurvivorRepo(t)
	ctx := context.Background()

	rec := makeTestRecord("Mara")
	created, err := repo.Create(ctx, campaignID, rec)
	require.NoError(t, err)

	rec.CurrentHP = rec.MaxHP - 15
	rec.CurrentStress = 22
	rec.Injured = true
	rec.Inventory["Medkit"] = 1
	require.NoError(t, repo.Save(ctx, created.ID, rec))

	got, err := repo.GetByName(ctx, campaignID, "Mara")
	require.NoError(t, err)
	assert.Equal(t, rec.MaxHP-15, got.Record.CurrentHP)
	assert.Equal(t, 22, got.Record.CurrentStress)
	assert.True(t, got.Record.Injured)
	assert.Equal(t, 1, got.Record.Inventory["Medkit"])
}

func TestSurvivorRepository_Save_NotFound(t *testing.T) {
	repo, _ := setupSurvivorRepo(t)
	err := repo.Save(context.Background(), 999999, makeTestRecord("Ghost"))
	assert.ErrorIs(t, err, postgres.ErrSurvivorNotFound)
}

func TestSurvivorRepository_ListByCampaign(t *testing.T) {
	repo, campaignID := setupSurvivorRepo(t)
	ctx := context.Background()

	for _, name := range []string{"Mara", "Jonah", "Priya"} {
		_, err := repo.Create(ctx, campaignID, makeTestRecord(name))
		require.NoError(t, err)
	}

	rows, err := repo.ListByCampaign(ctx, campaignID)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Mara", rows[0].Record.Name)
	assert.Equal(t, "Jonah", rows[1].Record.Name)
	assert.Equal(t, "Priya", rows[2].Record.Name)
}

func TestSurvivorRepository_Delete(t *testing.T) {
	repo, campaignID := setupSurvivorRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, campaignID, makeTestRecord("Mara"))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, created.ID))
	_, err = repo.GetByName(ctx, campaignID, "Mara")
	assert.ErrorIs(t, err, postgres.ErrSurvivorNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, created.ID), postgres.ErrSurvivorNotFound)
}
