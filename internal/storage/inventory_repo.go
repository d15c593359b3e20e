package storage

import (
	"context"
	"fmt"
)

type InventoryRepo struct {
	db DBTX
}

func NewInventoryRepo(db DBTX) *InventoryRepo {
	return &InventoryRepo{db: db}
}

func (r *InventoryRepo) Get(ctx context.Context, profileID string) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT item_id, quantity FROM inventory WHERE profile_id = ?`, profileID)
	if err != nil {
		return nil, fmt.Errorf("inventory list: %w", err)
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var (
			item string
			qty  int
		)
		if err := rows.Scan(&item, &qty); err != nil {
			return nil, fmt.Errorf("inventory scan: %w", err)
		}
		if qty > 0 {
			out[item] = qty
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("inventory rows: %w", err)
	}
	return out, nil
}

// Replace overwrites the stored inventory with inv. Zero quantities are dropped.
func (r *InventoryRepo) Replace(ctx context.Context, profileID string, inv map[string]int) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM inventory WHERE profile_id = ?`, profileID); err != nil {
		return fmt.Errorf("inventory clear: %w", err)
	}
	for item, qty := range inv {
		if qty <= 0 {
			continue
		}
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO inventory (profile_id, item_id, quantity) VALUES (?, ?, ?)
		`, profileID, item, qty)
		if err != nil {
			return fmt.Errorf("inventory insert: %w", err)
		}
	}
	return nil
}
