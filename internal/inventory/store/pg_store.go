package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	findQuantity   = `SELECT quantity FROM inventories WHERE product_id = $1`
	upsertQuantity = `INSERT INTO inventories (product_id, quantity) VALUES ($1, $2)
		ON CONFLICT (product_id) DO UPDATE SET quantity = EXCLUDED.quantity`
)

// PgStore implements InventoryStore on PostgreSQL.
type PgStore struct {
	db *pgxpool.Pool
}

func NewPgStore(dbp *pgxpool.Pool) *PgStore {
	return &PgStore{db: dbp}
}

func (p *PgStore) FindQuantity(ctx context.Context, productID int64) (int32, bool, error) {
	var quantity int32
	if err := p.db.QueryRow(ctx, findQuantity, productID).Scan(&quantity); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to find inventory: %w", err)
	}
	return quantity, true, nil
}

func (p *PgStore) Upsert(ctx context.Context, productID int64, quantity int32) error {
	if _, err := p.db.Exec(ctx, upsertQuantity, productID, quantity); err != nil {
		return fmt.Errorf("failed to upsert inventory: %w", err)
	}
	return nil
}
