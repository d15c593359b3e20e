package storage

import (
	"context"
	"fmt"

	"liferpg/internal/progression"
)

type SkillRepo struct {
	db DBTX
}

func NewSkillRepo(db DBTX) *SkillRepo {
	return &SkillRepo{db: db}
}

func (r *SkillRepo) List(ctx context.Context, profileID string) ([]progression.Skill, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, category, xp, level
		FROM skills
		WHERE profile_id = ?
		ORDER BY position ASC, id ASC
	`, profileID)
	if err != nil {
		return nil, fmt.Errorf("skill list: %w", err)
	}
	defer rows.Close()

	var out []progression.Skill
	for rows.Next() {
		var s progression.Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.Category, &s.XP, &s.Level); err != nil {
			return nil, fmt.Errorf("skill scan: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("skill rows: %w", err)
	}
	return out, nil
}

// ReplaceAll stores skills in order, removing any the profile no longer has.
func (r *SkillRepo) ReplaceAll(ctx context.Context, profileID string, skills []progression.Skill) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM skills WHERE profile_id = ?`, profileID); err != nil {
		return fmt.Errorf("skill clear: %w", err)
	}
	for i, s := range skills {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO skills (id, profile_id, name, category, xp, level, position)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, s.ID, profileID, s.Name, s.Category, s.XP, s.Level, i)
		if err != nil {
			return fmt.Errorf("skill insert: %w", err)
		}
	}
	return nil
}
