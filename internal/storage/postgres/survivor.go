package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/deadroad/internal/game/snapshot"
)

// ErrSurvivorNotFound is returned when a survivor lookup yields no results.
var ErrSurvivorNotFound = errors.New("survivor not found")

// ErrSurvivorNameTaken is returned when creating a survivor whose name already
// exists within the same campaign.
var ErrSurvivorNameTaken = errors.New("survivor name already taken in campaign")

// SurvivorRow is the persisted form of a survivor, tied to a campaign save.
type SurvivorRow struct {
	ID         int64
	CampaignID int64
	Record     snapshot.SurvivorRecord
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// SurvivorRepository provides survivor persistence operations.
type SurvivorRepository struct {
	db *pgxpool.Pool
}

// NewSurvivorRepository creates a SurvivorRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewSurvivorRepository(db *pgxpool.Pool) *SurvivorRepository {
	return &SurvivorRepository{db: db}
}

// Create inserts a survivor record for the given campaign.
//
// Precondition: campaignID must reference an existing campaign.
// Postcondition: Returns the created row, or ErrSurvivorNameTaken when the
// campaign already has a survivor with the same name.
func (r *SurvivorRepository) Create(ctx context.Context, campaignID int64, rec snapshot.SurvivorRecord) (*SurvivorRow, error) {
	out := SurvivorRow{CampaignID: campaignID, Record: rec}
	err := r.db.QueryRow(ctx, `
		INSERT INTO survivors (
			campaign_id, name, attributes, skills, traits, inventory,
			max_hp, current_hp, max_stress, current_stress, alive, injured)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at`,
		campaignID, rec.Name, rec.Attributes, rec.Skills, rec.Traits, rec.Inventory,
		rec.MaxHP, rec.CurrentHP, rec.MaxStress, rec.CurrentStress, rec.Alive, rec.Injured,
	).Scan(&out.ID, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrSurvivorNameTaken
		}
		return nil, fmt.Errorf("inserting survivor: %w", err)
	}
	return &out, nil
}

// Save persists a survivor's full state after a turn.
//
// Postcondition: Returns nil on success, ErrSurvivorNotFound if no row updated.
func (r *SurvivorRepository) Save(ctx context.Context, id int64, rec snapshot.SurvivorRecord) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE survivors SET
			attributes = $2, skills = $3, traits = $4, inventory = $5,
			max_hp = $6, current_hp = $7, max_stress = $8, current_stress = $9,
			alive = $10, injured = $11, updated_at = NOW()
		WHERE id = $1`,
		id, rec.Attributes, rec.Skills, rec.Traits, rec.Inventory,
		rec.MaxHP, rec.CurrentHP, rec.MaxStress, rec.CurrentStress, rec.Alive, rec.Injured,
	)
	if err != nil {
		return fmt.Errorf("saving survivor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSurvivorNotFound
	}
	return nil
}

// GetByName retrieves a survivor by name within a campaign.
//
// Postcondition: Returns the row or ErrSurvivorNotFound.
func (r *SurvivorRepository) GetByName(ctx context.Context, campaignID int64, name string) (*SurvivorRow, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, campaign_id, name, attributes, skills, traits, inventory,
			max_hp, current_hp, max_stress, current_stress, alive, injured,
			created_at, updated_at
		FROM survivors WHERE campaign_id = $1 AND name = $2`,
		campaignID, name,
	)
	out, err := scanSurvivor(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSurvivorNotFound
		}
		return nil, fmt.Errorf("querying survivor: %w", err)
	}
	return out, nil
}

// ListByCampaign retrieves all survivors belonging to a campaign, ordered by
// creation time.
func (r *SurvivorRepository) ListByCampaign(ctx context.Context, campaignID int64) ([]*SurvivorRow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, campaign_id, name, attributes, skills, traits, inventory,
			max_hp, current_hp, max_stress, current_stress, alive, injured,
			created_at, updated_at
		FROM survivors WHERE campaign_id = $1 ORDER BY id`,
		campaignID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying survivors: %w", err)
	}
	defer rows.Close()

	var out []*SurvivorRow
	for rows.Next() {
		row, err := scanSurvivor(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning survivor: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating survivors: %w", err)
	}
	return out, nil
}

// Delete removes a survivor row.
//
// Postcondition: Returns nil on success, ErrSurvivorNotFound if no row deleted.
func (r *SurvivorRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM survivors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting survivor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSurvivorNotFound
	}
	return nil
}

func scanSurvivor(row pgx.Row) (*SurvivorRow, error) {
	var out SurvivorRow
	err := row.Scan(
		&out.ID, &out.CampaignID, &out.Record.Name,
		&out.Record.Attributes, &out.Record.Skills, &out.Record.Traits, &out.Record.Inventory,
		&out.Record.MaxHP, &out.Record.CurrentHP, &out.Record.MaxStress, &out.Record.CurrentStress,
		&out.Record.Alive, &out.Record.Injured,
		&out.CreatedAt, &out.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
