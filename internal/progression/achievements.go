package progression

import "time"

// Evaluate returns the achievements satisfied by the given state that are not
// in unlocked, in definition order. Calling it again after recording the
// result yields nothing new.
func Evaluate(defs []Achievement, p Profile, skills []Skill, h History, unlocked map[string]bool) []Achievement {
	var out []Achievement
	for _, def := range defs {
		if unlocked[def.ID] {
			continue
		}
		if criteriaMet(def.Criteria, p, skills, h) {
			out = append(out, def)
		}
	}
	return out
}

// CheckUnlock reports whether a single achievement can be unlocked now.
func CheckUnlock(def Achievement, p Profile, skills []Skill, h History, unlocked map[string]bool) (bool, error) {
	if unlocked[def.ID] {
		return false, ErrAlreadyUnlocked
	}
	return criteriaMet(def.Criteria, p, skills, h), nil
}

// Unlock builds unlock records for newly satisfied achievements.
func Unlock(newly []Achievement, now time.Time) []AchievementUnlock {
	out := make([]AchievementUnlock, 0, len(newly))
	for _, a := range newly {
		out = append(out, AchievementUnlock{AchievementID: a.ID, UnlockedAt: now})
	}
	return out
}

func criteriaMet(c Criteria, p Profile, skills []Skill, h History) bool {
	switch c.Type {
	case CriteriaLevelReached:
		return p.Level >= c.Value
	case CriteriaMissionsCompleted:
		if c.Category != "" {
			return h.MissionsByCategory[c.Category] >= c.Value
		}
		return h.MissionsCompleted >= c.Value
	case CriteriaGoalsCompleted:
		return h.GoalsCompleted >= c.Value
	case CriteriaSkillLevelReached:
		for _, s := range skills {
			if c.Category != "" && s.Category != c.Category {
				continue
			}
			if s.Level >= c.Value {
				return true
			}
		}
		return false
	case CriteriaStreakMaintained:
		return p.Streak >= c.Value
	default:
		return false
	}
}
