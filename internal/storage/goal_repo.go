package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type GoalRepo struct {
	db DBTX
}

func NewGoalRepo(db DBTX) *GoalRepo {
	return &GoalRepo{db: db}
}

func (r *GoalRepo) Insert(ctx context.Context, profileID, title, category string, at time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO goals (profile_id, title, category, status, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, profileID, title, category, StatusActive, at)
	if err != nil {
		return 0, fmt.Errorf("goal insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("goal last insert id: %w", err)
	}
	return id, nil
}

func (r *GoalRepo) Get(ctx context.Context, profileID string, id int64) (*Goal, error) {
	var (
		g         Goal
		completed sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, profile_id, title, category, status, created_at, completed_at
		FROM goals WHERE profile_id = ? AND id = ?
	`, profileID, id).Scan(&g.ID, &g.ProfileID, &g.Title, &g.Category, &g.Status, &g.CreatedAt, &completed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("goal get: %w", err)
	}
	g.CreatedAt = g.CreatedAt.UTC()
	if completed.Valid {
		v := completed.Time.UTC()
		g.CompletedAt = &v
	}
	return &g, nil
}

func (r *GoalRepo) ListActive(ctx context.Context, profileID string) ([]Goal, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, profile_id, title, category, status, created_at
		FROM goals
		WHERE profile_id = ? AND status = ?
		ORDER BY created_at ASC, id ASC
	`, profileID, StatusActive)
	if err != nil {
		return nil, fmt.Errorf("goal list: %w", err)
	}
	defer rows.Close()

	var out []Goal
	for rows.Next() {
		var g Goal
		if err := rows.Scan(&g.ID, &g.ProfileID, &g.Title, &g.Category, &g.Status, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("goal scan: %w", err)
		}
		g.CreatedAt = g.CreatedAt.UTC()
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("goal rows: %w", err)
	}
	return out, nil
}

func (r *GoalRepo) MarkDone(ctx context.Context, profileID string, id int64, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE goals SET status = ?, completed_at = ?
		WHERE profile_id = ? AND id = ? AND status = ?
	`, StatusDone, at, profileID, id, StatusActive)
	if err != nil {
		return fmt.Errorf("goal mark done: %w", err)
	}
	return expectOneRow(res, "goal mark done")
}

func (r *GoalRepo) CompletedCount(ctx context.Context, profileID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM goals WHERE profile_id = ? AND status = ?`,
		profileID, StatusDone).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("goal count: %w", err)
	}
	return n, nil
}
