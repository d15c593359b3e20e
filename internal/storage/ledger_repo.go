package storage

import (
	"context"
	"fmt"

	"liferpg/internal/progression"
)

type LedgerRepo struct {
	db DBTX
}

func NewLedgerRepo(db DBTX) *LedgerRepo {
	return &LedgerRepo{db: db}
}

func (r *LedgerRepo) Append(ctx context.Context, e progression.LedgerEntry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO effect_ledger (id, profile_id, at, item_id, kind, outcome, error, detail)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.PlayerID, e.At, e.ItemID, string(e.Kind), string(e.Outcome), e.Error, e.Detail)
	if err != nil {
		return fmt.Errorf("ledger append: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (r *LedgerRepo) Recent(ctx context.Context, profileID string, limit int) ([]progression.LedgerEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, profile_id, at, item_id, kind, outcome, error, detail
		FROM effect_ledger
		WHERE profile_id = ?
		ORDER BY at DESC, rowid DESC
		LIMIT ?
	`, profileID, limit)
	if err != nil {
		return nil, fmt.Errorf("ledger list: %w", err)
	}
	defer rows.Close()

	var out []progression.LedgerEntry
	for rows.Next() {
		var (
			e             progression.LedgerEntry
			kind, outcome string
		)
		if err := rows.Scan(&e.ID, &e.PlayerID, &e.At, &e.ItemID, &kind, &outcome, &e.Error, &e.Detail); err != nil {
			return nil, fmt.Errorf("ledger scan: %w", err)
		}
		e.At = e.At.UTC()
		e.Kind = progression.EffectKind(kind)
		e.Outcome = progression.LedgerOutcome(outcome)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ledger rows: %w", err)
	}
	return out, nil
}
