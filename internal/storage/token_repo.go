package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type TokenRepo struct {
	db DBTX
}

func NewTokenRepo(db DBTX) *TokenRepo {
	return &TokenRepo{db: db}
}

func (r *TokenRepo) Insert(ctx context.Context, t RerollToken) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reroll_tokens (id, profile_id, mission_id, issued_at) VALUES (?, ?, ?, ?)
	`, t.ID, t.ProfileID, t.MissionID, t.IssuedAt)
	if err != nil {
		return fmt.Errorf("token insert: %w", err)
	}
	return nil
}

func (r *TokenRepo) Get(ctx context.Context, profileID, id string) (*RerollToken, error) {
	var (
		t        RerollToken
		redeemed sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, profile_id, mission_id, issued_at, redeemed_at
		FROM reroll_tokens WHERE profile_id = ? AND id = ?
	`, profileID, id).Scan(&t.ID, &t.ProfileID, &t.MissionID, &t.IssuedAt, &redeemed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("token get: %w", err)
	}
	t.IssuedAt = t.IssuedAt.UTC()
	if redeemed.Valid {
		v := redeemed.Time.UTC()
		t.RedeemedAt = &v
	}
	return &t, nil
}

// Redeem marks an unredeemed token as used.
func (r *TokenRepo) Redeem(ctx context.Context, profileID, id string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE reroll_tokens SET redeemed_at = ?
		WHERE profile_id = ? AND id = ? AND redeemed_at IS NULL
	`, at, profileID, id)
	if err != nil {
		return fmt.Errorf("token redeem: %w", err)
	}
	return expectOneRow(res, "token redeem")
}
