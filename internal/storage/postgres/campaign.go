package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrCampaignNotFound is returned when a campaign lookup yields no results.
var ErrCampaignNotFound = errors.New("campaign not found")

// ErrCampaignNameTaken is returned when creating a campaign with a name that
// already exists.
var ErrCampaignNameTaken = errors.New("campaign name already taken")

// CampaignRow is the persisted form of a campaign save.
type CampaignRow struct {
	ID        int64
	Name      string
	Day       int
	Resources map[string]int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CampaignRepository provides campaign persistence operations.
type CampaignRepository struct {
	db *pgxpool.Pool
}

// NewCampaignRepository creates a CampaignRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewCampaignRepository(db *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{db: db}
}

// Create inserts a new campaign save and returns it with ID and timestamps set.
//
// Precondition: name must be non-empty.
// Postcondition: Returns the created row, or ErrCampaignNameTaken on duplicate.
func (r *CampaignRepository) Create(ctx context.Context, name string, day int, resources map[string]int) (*CampaignRow, error) {
	if resources == nil {
		resources = map[string]int{}
	}
	var out CampaignRow
	err := r.db.QueryRow(ctx, `
		INSERT INTO campaigns (name, day, resources)
		VALUES ($1, $2, $3)
		RETURNING id, name, day, resources, created_at, updated_at`,
		name, day, resources,
	).Scan(&out.ID, &out.Name, &out.Day, &out.Resources, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrCampaignNameTaken
		}
		return nil, fmt.Errorf("inserting campaign: %w", err)
	}
	return &out, nil
}

// GetByName retrieves a campaign save by its unique name.
//
// Postcondition: Returns the row or ErrCampaignNotFound.
func (r *CampaignRepository) GetByName(ctx context.Context, name string) (*CampaignRow, error) {
	var out CampaignRow
	err := r.db.QueryRow(ctx, `
		SELECT id, name, day, resources, created_at, updated_at
		FROM campaigns WHERE name = $1`,
		name,
	).Scan(&out.ID, &out.Name, &out.Day, &out.Resources, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCampaignNotFound
		}
		return nil, fmt.Errorf("querying campaign: %w", err)
	}
	return &out, nil
}

// SaveState persists the day counter and resource ledger after a turn.
//
// Precondition: id must be > 0.
// Postcondition: Returns nil on success, ErrCampaignNotFound if no row updated.
func (r *CampaignRepository) SaveState(ctx context.Context, id int64, day int, resources map[string]int) error {
	if resources == nil {
		resources = map[string]int{}
	}
	tag, err := r.db.Exec(ctx, `
		UPDATE campaigns SET day = $2, resources = $3, updated_at = NOW()
		WHERE id = $1`,
		id, day, resources,
	)
	if err != nil {
		return fmt.Errorf("saving campaign state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCampaignNotFound
	}
	return nil
}
