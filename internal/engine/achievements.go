package engine

import (
	"context"
	"time"

	"liferpg/internal/progression"
	"liferpg/internal/storage"
)

// AchievementView is an achievement definition with the player's unlock status.
type AchievementView struct {
	progression.Achievement
	Icon       string
	Earned     bool
	UnlockedAt *time.Time
}

func criteriaIcon(t progression.CriteriaType) string {
	switch t {
	case progression.CriteriaLevelReached:
		return "⭐"
	case progression.CriteriaMissionsCompleted:
		return "⚔"
	case progression.CriteriaGoalsCompleted:
		return "🏁"
	case progression.CriteriaSkillLevelReached:
		return "📈"
	case progression.CriteriaStreakMaintained:
		return "🔥"
	default:
		return "•"
	}
}

// Achievements returns every definition with its earned status, in
// definition order.
func (s *Service) Achievements(ctx context.Context) ([]AchievementView, error) {
	unlocks, err := storage.NewAchievementRepo(s.db).List(ctx, s.playerID)
	if err != nil {
		return nil, err
	}
	at := make(map[string]time.Time, len(unlocks))
	for _, u := range unlocks {
		at[u.AchievementID] = u.UnlockedAt
	}

	out := make([]AchievementView, 0, len(s.achievements))
	for _, def := range s.achievements {
		v := AchievementView{Achievement: def, Icon: criteriaIcon(def.Criteria.Type)}
		if t, ok := at[def.ID]; ok {
			v.Earned = true
			v.UnlockedAt = &t
		}
		out = append(out, v)
	}
	return out, nil
}

// CountEarned returns how many achievements in views have been earned.
func CountEarned(views []AchievementView) int {
	count := 0
	for _, v := range views {
		if v.Earned {
			count++
		}
	}
	return count
}

// EvaluateAchievements runs the criteria evaluator against the current state
// and returns what it newly unlocked.
func (s *Service) EvaluateAchievements(ctx context.Context) ([]progression.Achievement, error) {
	res, err := s.run(ctx, "achievements", func(ctx context.Context, t *txn) (step, error) {
		return step{State: t.state}, nil
	})
	if err != nil {
		return nil, err
	}
	return res.Unlocked, nil
}
