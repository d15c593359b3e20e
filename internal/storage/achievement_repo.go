package storage

import (
	"context"
	"fmt"

	"liferpg/internal/progression"
)

type AchievementRepo struct {
	db DBTX
}

func NewAchievementRepo(db DBTX) *AchievementRepo {
	return &AchievementRepo{db: db}
}

func (r *AchievementRepo) List(ctx context.Context, profileID string) ([]progression.AchievementUnlock, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT achievement_id, unlocked_at
		FROM achievement_unlocks
		WHERE profile_id = ?
		ORDER BY unlocked_at ASC, achievement_id ASC
	`, profileID)
	if err != nil {
		return nil, fmt.Errorf("unlock list: %w", err)
	}
	defer rows.Close()

	var out []progression.AchievementUnlock
	for rows.Next() {
		var u progression.AchievementUnlock
		if err := rows.Scan(&u.AchievementID, &u.UnlockedAt); err != nil {
			return nil, fmt.Errorf("unlock scan: %w", err)
		}
		u.UnlockedAt = u.UnlockedAt.UTC()
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unlock rows: %w", err)
	}
	return out, nil
}

// UnlockedSet returns the ids of unlocked achievements.
func (r *AchievementRepo) UnlockedSet(ctx context.Context, profileID string) (map[string]bool, error) {
	list, err := r.List(ctx, profileID)
	if err != nil {
		return nil, err
	}
	out := make(map[string]bool, len(list))
	for _, u := range list {
		out[u.AchievementID] = true
	}
	return out, nil
}

// Insert records an unlock. Unlocks are never overwritten, so a repeated
// insert keeps the original timestamp. It reports whether a row was added.
func (r *AchievementRepo) Insert(ctx context.Context, profileID string, u progression.AchievementUnlock) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO achievement_unlocks (profile_id, achievement_id, unlocked_at)
		VALUES (?, ?, ?)
	`, profileID, u.AchievementID, u.UnlockedAt)
	if err != nil {
		return false, fmt.Errorf("unlock insert: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("unlock rows affected: %w", err)
	}
	return n > 0, nil
}
