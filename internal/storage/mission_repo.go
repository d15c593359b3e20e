package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type MissionRepo struct {
	db DBTX
}

func NewMissionRepo(db DBTX) *MissionRepo {
	return &MissionRepo{db: db}
}

const missionColumns = `id, profile_id, title, category, skill_id, xp_reward, coin_reward, status, created_at, completed_at, xp_awarded, recurrence, next_due_at`

func (r *MissionRepo) Insert(ctx context.Context, in MissionInsert) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO missions (profile_id, title, category, skill_id, xp_reward, coin_reward, status, created_at, recurrence)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, in.ProfileID, in.Title, in.Category, nullString(in.SkillID), in.XPReward, in.CoinReward, StatusActive, in.CreatedAt, in.Recurrence)
	if err != nil {
		return 0, fmt.Errorf("mission insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("mission last insert id: %w", err)
	}
	return id, nil
}

func (r *MissionRepo) Get(ctx context.Context, profileID string, id int64) (*Mission, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+missionColumns+` FROM missions WHERE profile_id = ? AND id = ?`, profileID, id)
	m, err := scanMission(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("mission get: %w", err)
	}
	return m, nil
}

// List returns missions with the given status, oldest first. An empty status lists all.
func (r *MissionRepo) List(ctx context.Context, profileID, status string) ([]Mission, error) {
	query := `SELECT ` + missionColumns + ` FROM missions WHERE profile_id = ?`
	args := []any{profileID}
	if status != "" {
		query += ` AND status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY created_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("mission list: %w", err)
	}
	defer rows.Close()

	var out []Mission
	for rows.Next() {
		m, err := scanMission(rows)
		if err != nil {
			return nil, fmt.Errorf("mission scan: %w", err)
		}
		out = append(out, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("mission rows: %w", err)
	}
	return out, nil
}

// MarkDone closes an active mission and records the completion.
func (r *MissionRepo) MarkDone(ctx context.Context, profileID string, id int64, at time.Time, xpAwarded int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE missions SET status = ?, completed_at = ?, xp_awarded = xp_awarded + ?
		WHERE profile_id = ? AND id = ? AND status = ?
	`, StatusDone, at, xpAwarded, profileID, id, StatusActive)
	if err != nil {
		return fmt.Errorf("mission mark done: %w", err)
	}
	if err := expectOneRow(res, "mission mark done"); err != nil {
		return err
	}
	return r.insertCompletion(ctx, profileID, id, at, xpAwarded)
}

// Reschedule records a completion of a recurring mission and keeps it active
// until nextDue.
func (r *MissionRepo) Reschedule(ctx context.Context, profileID string, id int64, at, nextDue time.Time, xpAwarded int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE missions SET completed_at = ?, next_due_at = ?, xp_awarded = xp_awarded + ?
		WHERE profile_id = ? AND id = ? AND status = ? AND recurrence != ''
	`, at, nextDue, xpAwarded, profileID, id, StatusActive)
	if err != nil {
		return fmt.Errorf("mission reschedule: %w", err)
	}
	if err := expectOneRow(res, "mission reschedule"); err != nil {
		return err
	}
	return r.insertCompletion(ctx, profileID, id, at, xpAwarded)
}

func (r *MissionRepo) insertCompletion(ctx context.Context, profileID string, id int64, at time.Time, xpAwarded int) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO mission_completions (profile_id, mission_id, category, completed_at, xp_awarded)
		SELECT profile_id, id, category, ?, ? FROM missions WHERE profile_id = ? AND id = ?
	`, at, xpAwarded, profileID, id)
	if err != nil {
		return fmt.Errorf("mission completion insert: %w", err)
	}
	return nil
}

// Completions returns every completion of a mission, oldest first.
func (r *MissionRepo) Completions(ctx context.Context, profileID string, id int64) ([]MissionCompletion, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT mission_id, category, completed_at, xp_awarded
		FROM mission_completions
		WHERE profile_id = ? AND mission_id = ?
		ORDER BY completed_at ASC, id ASC
	`, profileID, id)
	if err != nil {
		return nil, fmt.Errorf("mission completions: %w", err)
	}
	defer rows.Close()

	var out []MissionCompletion
	for rows.Next() {
		var c MissionCompletion
		if err := rows.Scan(&c.MissionID, &c.Category, &c.CompletedAt, &c.XPAwarded); err != nil {
			return nil, fmt.Errorf("mission completions scan: %w", err)
		}
		c.CompletedAt = c.CompletedAt.UTC()
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("mission completions rows: %w", err)
	}
	return out, nil
}

// Retitle replaces the objective of an active mission, keeping its rewards.
func (r *MissionRepo) Retitle(ctx context.Context, profileID string, id int64, title, category string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE missions SET title = ?, category = ?
		WHERE profile_id = ? AND id = ? AND status = ?
	`, title, category, profileID, id, StatusActive)
	if err != nil {
		return fmt.Errorf("mission retitle: %w", err)
	}
	return expectOneRow(res, "mission retitle")
}

// CompletedCounts returns the number of mission completions, total and per
// category. Every completion of a recurring mission counts.
func (r *MissionRepo) CompletedCounts(ctx context.Context, profileID string) (int, map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT category, COUNT(*)
		FROM mission_completions
		WHERE profile_id = ?
		GROUP BY category
	`, profileID)
	if err != nil {
		return 0, nil, fmt.Errorf("mission counts: %w", err)
	}
	defer rows.Close()

	total := 0
	byCat := map[string]int{}
	for rows.Next() {
		var (
			cat string
			n   int
		)
		if err := rows.Scan(&cat, &n); err != nil {
			return 0, nil, fmt.Errorf("mission counts scan: %w", err)
		}
		total += n
		if cat != "" {
			byCat[cat] = n
		}
	}
	if err := rows.Err(); err != nil {
		return 0, nil, fmt.Errorf("mission counts rows: %w", err)
	}
	return total, byCat, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMission(s rowScanner) (*Mission, error) {
	var (
		m         Mission
		skillID   sql.NullString
		completed sql.NullTime
		nextDue   sql.NullTime
	)
	if err := s.Scan(&m.ID, &m.ProfileID, &m.Title, &m.Category, &skillID, &m.XPReward, &m.CoinReward,
		&m.Status, &m.CreatedAt, &completed, &m.XPAwarded, &m.Recurrence, &nextDue); err != nil {
		return nil, err
	}
	m.CreatedAt = m.CreatedAt.UTC()
	if skillID.Valid {
		v := skillID.String
		m.SkillID = &v
	}
	if completed.Valid {
		v := completed.Time.UTC()
		m.CompletedAt = &v
	}
	if nextDue.Valid {
		v := nextDue.Time.UTC()
		m.NextDueAt = &v
	}
	return &m, nil
}

func nullString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func expectOneRow(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n != 1 {
		return fmt.Errorf("%s: expected 1 row, got %d", op, n)
	}
	return nil
}
