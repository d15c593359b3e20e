package engine

import (
	"context"
	"time"

	"liferpg/internal/progression"
)

// CheckStreak runs the daily break check on its own. Every other operation
// runs it first as well.
func (s *Service) CheckStreak(ctx context.Context) (*Result, error) {
	return s.run(ctx, "streak_check", func(ctx context.Context, t *txn) (step, error) {
		return step{State: t.state}, nil
	})
}

// StreakAtRisk reports whether the streak breaks unless a mission is
// completed today.
func StreakAtRisk(p progression.Profile, now time.Time) bool {
	if p.Streak <= 0 || p.LastActiveDay == nil {
		return false
	}
	return progression.Day(*p.LastActiveDay).Before(progression.Day(now))
}
