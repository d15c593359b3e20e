package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS profiles (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			level INTEGER NOT NULL DEFAULT 1,
			current_xp INTEGER NOT NULL DEFAULT 0,
			currency INTEGER NOT NULL DEFAULT 0,
			streak INTEGER NOT NULL DEFAULT 0,
			last_active_day DATETIME,

			dungeon_skill_id TEXT,
			dungeon_state TEXT,
			dungeon_offered_at DATETIME,
			dungeon_accepted_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS skills (
			id TEXT NOT NULL,
			profile_id TEXT NOT NULL,
			name TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			xp INTEGER NOT NULL DEFAULT 0,
			level INTEGER NOT NULL DEFAULT 1,
			position INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (profile_id, id),
			FOREIGN KEY(profile_id) REFERENCES profiles(id)
		);`,
		`CREATE TABLE IF NOT EXISTS inventory (
			profile_id TEXT NOT NULL,
			item_id TEXT NOT NULL,
			quantity INTEGER NOT NULL CHECK (quantity >= 0),
			PRIMARY KEY (profile_id, item_id),
			FOREIGN KEY(profile_id) REFERENCES profiles(id)
		);`,
		`CREATE TABLE IF NOT EXISTS active_effects (
			id TEXT PRIMARY KEY,
			profile_id TEXT NOT NULL,
			item_id TEXT NOT NULL,
			kind TEXT NOT NULL,
			multiplier REAL NOT NULL DEFAULT 1,
			activated_at DATETIME NOT NULL,
			expires_at DATETIME,
			FOREIGN KEY(profile_id) REFERENCES profiles(id)
		);`,
		// Append-only audit of effect applications.
		`CREATE TABLE IF NOT EXISTS effect_ledger (
			id TEXT PRIMARY KEY,
			profile_id TEXT NOT NULL,
			at DATETIME NOT NULL,
			item_id TEXT NOT NULL DEFAULT '',
			kind TEXT NOT NULL DEFAULT '',
			outcome TEXT NOT NULL,
			error TEXT NOT NULL DEFAULT '',
			detail TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE TABLE IF NOT EXISTS achievement_unlocks (
			profile_id TEXT NOT NULL,
			achievement_id TEXT NOT NULL,
			unlocked_at DATETIME NOT NULL,
			PRIMARY KEY (profile_id, achievement_id)
		);`,
		`CREATE TABLE IF NOT EXISTS missions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			profile_id TEXT NOT NULL,
			title TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			skill_id TEXT,
			xp_reward INTEGER NOT NULL,
			coin_reward INTEGER NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT 'active',
			created_at DATETIME NOT NULL,
			completed_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS goals (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			profile_id TEXT NOT NULL,
			title TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'active',
			created_at DATETIME NOT NULL,
			completed_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS reroll_tokens (
			id TEXT PRIMARY KEY,
			profile_id TEXT NOT NULL,
			mission_id INTEGER NOT NULL,
			issued_at DATETIME NOT NULL,
			redeemed_at DATETIME,
			FOREIGN KEY(mission_id) REFERENCES missions(id)
		);`,
		`CREATE TABLE IF NOT EXISTS mission_completions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			profile_id TEXT NOT NULL,
			mission_id INTEGER NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			completed_at DATETIME NOT NULL,
			xp_awarded INTEGER NOT NULL DEFAULT 0,
			FOREIGN KEY(mission_id) REFERENCES missions(id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_mission_completions_profile ON mission_completions(profile_id, mission_id);`,
		`CREATE INDEX IF NOT EXISTS idx_missions_profile_status ON missions(profile_id, status);`,
		`CREATE INDEX IF NOT EXISTS idx_goals_profile_status ON goals(profile_id, status);`,
		`CREATE INDEX IF NOT EXISTS idx_effect_ledger_profile_at ON effect_ledger(profile_id, at);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	// Columns added after the first release (ignore if already present).
	alterStmts := []string{
		// XP actually awarded, including boosts.
		`ALTER TABLE missions ADD COLUMN xp_awarded INTEGER NOT NULL DEFAULT 0;`,
		// Recurring missions.
		`ALTER TABLE missions ADD COLUMN recurrence TEXT NOT NULL DEFAULT '';`,
		`ALTER TABLE missions ADD COLUMN next_due_at DATETIME;`,
	}
	for _, stmt := range alterStmts {
		_, err := db.ExecContext(ctx, stmt)
		if err != nil && !strings.Contains(err.Error(), "duplicate column") {
			return fmt.Errorf("migrate alter: %w", err)
		}
	}

	return nil
}
