package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LedgerRepository persists per-campaign resource quantities as individual
// rows, one per resource, so single-resource updates do not rewrite the whole
// ledger.
type LedgerRepository struct {
	db *pgxpool.Pool
}

// NewLedgerRepository creates a LedgerRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewLedgerRepository(db *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// Upsert sets the quantity of one resource, inserting the row if absent.
//
// Precondition: quantity must be >= 0.
func (r *LedgerRepository) Upsert(ctx context.Context, campaignID int64, resource string, quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("ledger quantity must be >= 0, got %d for %q", quantity, resource)
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO ledger_resources (campaign_id, resource, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (campaign_id, resource)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = NOW()`,
		campaignID, resource, quantity,
	)
	if err != nil {
		return fmt.Errorf("upserting ledger resource: %w", err)
	}
	return nil
}

// SaveAll replaces the campaign's entire ledger in one transaction.
//
// Postcondition: The stored ledger equals resources exactly; rows for
// resources not present in the map are removed.
func (r *LedgerRepository) SaveAll(ctx context.Context, campaignID int64, resources map[string]int) error {
	for res, qty := range resources {
		if qty < 0 {
			return fmt.Errorf("ledger quantity must be >= 0, got %d for %q", qty, res)
		}
	}

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("beginning ledger transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM ledger_resources WHERE campaign_id = $1`, campaignID); err != nil {
		return fmt.Errorf("clearing ledger: %w", err)
	}
	for res, qty := range resources {
		_, err := tx.Exec(ctx, `
			INSERT INTO ledger_resources (campaign_id, resource, quantity)
			VALUES ($1, $2, $3)`,
			campaignID, res, qty,
		)
		if err != nil {
			return fmt.Errorf("inserting ledger resource %q: %w", res, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing ledger transaction: %w", err)
	}
	return nil
}

// Load returns the campaign's full ledger. A campaign with no rows yields an
// empty, non-nil map.
func (r *LedgerRepository) Load(ctx context.Context, campaignID int64) (map[string]int, error) {
	rows, err := r.db.Query(ctx, `
		SELECT resource, quantity FROM ledger_resources WHERE campaign_id = $1`,
		campaignID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying ledger: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var resource string
		var quantity int
		if err := rows.Scan(&resource, &quantity); err != nil {
			return nil, fmt.Errorf("scanning ledger row: %w", err)
		}
		out[resource] = quantity
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ledger rows: %w", err)
	}
	return out, nil
}
