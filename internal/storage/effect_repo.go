package storage

import (
	"context"
	"database/sql"
	"fmt"

	"liferpg/internal/progression"
)

type EffectRepo struct {
	db DBTX
}

func NewEffectRepo(db DBTX) *EffectRepo {
	return &EffectRepo{db: db}
}

func (r *EffectRepo) List(ctx context.Context, profileID string) ([]progression.AppliedEffect, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, item_id, kind, multiplier, activated_at, expires_at
		FROM active_effects
		WHERE profile_id = ?
		ORDER BY activated_at ASC, id ASC
	`, profileID)
	if err != nil {
		return nil, fmt.Errorf("effect list: %w", err)
	}
	defer rows.Close()

	var out []progression.AppliedEffect
	for rows.Next() {
		var (
			e       progression.AppliedEffect
			kind    string
			expires sql.NullTime
		)
		if err := rows.Scan(&e.ID, &e.ItemID, &kind, &e.Multiplier, &e.ActivatedAt, &expires); err != nil {
			return nil, fmt.Errorf("effect scan: %w", err)
		}
		e.Kind = progression.EffectKind(kind)
		e.ActivatedAt = e.ActivatedAt.UTC()
		if expires.Valid {
			v := expires.Time.UTC()
			e.ExpiresAt = &v
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("effect rows: %w", err)
	}
	return out, nil
}

func (r *EffectRepo) Replace(ctx context.Context, profileID string, effects []progression.AppliedEffect) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM active_effects WHERE profile_id = ?`, profileID); err != nil {
		return fmt.Errorf("effect clear: %w", err)
	}
	for _, e := range effects {
		var expires any
		if e.ExpiresAt != nil {
			expires = *e.ExpiresAt
		}
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO active_effects (id, profile_id, item_id, kind, multiplier, activated_at, expires_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, e.ID, profileID, e.ItemID, string(e.Kind), e.Multiplier, e.ActivatedAt, expires)
		if err != nil {
			return fmt.Errorf("effect insert: %w", err)
		}
	}
	return nil
}
