package storage

import "time"

const (
	StatusActive   = "active"
	StatusDone     = "done"
	StatusRerolled = "rerolled"
)

type Mission struct {
	ID          int64
	ProfileID   string
	Title       string
	Category    string
	SkillID     *string
	XPReward    int
	CoinReward  int
	Status      string
	CreatedAt   time.Time
	CompletedAt *time.Time
	XPAwarded   int
	// Recurrence is empty for one-shot missions.
	Recurrence string
	NextDueAt  *time.Time
}

type MissionInsert struct {
	ProfileID  string
	Title      string
	Category   string
	SkillID    *string
	XPReward   int
	CoinReward int
	Recurrence string
	CreatedAt  time.Time
}

type MissionCompletion struct {
	MissionID   int64
	Category    string
	CompletedAt time.Time
	XPAwarded   int
}

type Goal struct {
	ID          int64
	ProfileID   string
	Title       string
	Category    string
	Status      string
	CreatedAt   time.Time
	CompletedAt *time.Time
}

type RerollToken struct {
	ID         string
	ProfileID  string
	MissionID  int64
	IssuedAt   time.Time
	RedeemedAt *time.Time
}
