package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"liferpg/internal/progression"
)

type ProfileRepo struct {
	db DBTX
}

func NewProfileRepo(db DBTX) *ProfileRepo {
	return &ProfileRepo{db: db}
}

func (r *ProfileRepo) Get(ctx context.Context, id string) (*progression.Profile, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, level, current_xp, currency, streak, last_active_day,
			dungeon_skill_id, dungeon_state, dungeon_offered_at, dungeon_accepted_at
		FROM profiles
		WHERE id = ?
	`, id)

	var (
		p            progression.Profile
		lastActive   sql.NullTime
		dungeonSkill sql.NullString
		dungeonState sql.NullString
		offeredAt    sql.NullTime
		acceptedAt   sql.NullTime
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Level, &p.CurrentXP, &p.Currency, &p.Streak, &lastActive,
		&dungeonSkill, &dungeonState, &offeredAt, &acceptedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("profile get: %w", err)
	}

	if lastActive.Valid {
		v := lastActive.Time.UTC()
		p.LastActiveDay = &v
	}
	if dungeonState.Valid && progression.DungeonState(dungeonState.String).Live() {
		ev := &progression.DungeonEvent{
			SkillID:   dungeonSkill.String,
			State:     progression.DungeonState(dungeonState.String),
			OfferedAt: offeredAt.Time.UTC(),
		}
		if acceptedAt.Valid {
			v := acceptedAt.Time.UTC()
			ev.AcceptedAt = &v
		}
		p.Dungeon = ev
	}
	return &p, nil
}

func (r *ProfileRepo) Insert(ctx context.Context, id, name string) error {
	if _, err := r.db.ExecContext(ctx, `INSERT INTO profiles (id, name) VALUES (?, ?)`, id, name); err != nil {
		return fmt.Errorf("profile insert: %w", err)
	}
	return nil
}

// Update writes the scalar profile fields and the live dungeon event.
// Effects are stored by EffectRepo.
func (r *ProfileRepo) Update(ctx context.Context, p *progression.Profile) error {
	var (
		dungeonSkill, dungeonState any
		offeredAt, acceptedAt      any
	)
	if ev := p.Dungeon; ev != nil && ev.State.Live() {
		dungeonSkill = ev.SkillID
		dungeonState = string(ev.State)
		offeredAt = ev.OfferedAt
		if ev.AcceptedAt != nil {
			acceptedAt = *ev.AcceptedAt
		}
	}
	var lastActive any
	if p.LastActiveDay != nil {
		lastActive = *p.LastActiveDay
	}

	_, err := r.db.ExecContext(ctx, `
		UPDATE profiles
		SET name = ?, level = ?, current_xp = ?, currency = ?, streak = ?, last_active_day = ?,
			dungeon_skill_id = ?, dungeon_state = ?, dungeon_offered_at = ?, dungeon_accepted_at = ?
		WHERE id = ?
	`, p.Name, p.Level, p.CurrentXP, p.Currency, p.Streak, lastActive,
		dungeonSkill, dungeonState, offeredAt, acceptedAt, p.ID)
	if err != nil {
		return fmt.Errorf("profile update: %w", err)
	}
	return nil
}
