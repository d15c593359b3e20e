package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func levelDefs() []Achievement {
	return []Achievement{
		{ID: "level_5", Criteria: Criteria{Type: CriteriaLevelReached, Value: 5}},
		{ID: "level_10", Criteria: Criteria{Type: CriteriaLevelReached, Value: 10}},
		{ID: "level_25", Criteria: Criteria{Type: CriteriaLevelReached, Value: 25}},
	}
}

func ids(as []Achievement) []string {
	out := make([]string, 0, len(as))
	for _, a := range as {
		out = append(out, a.ID)
	}
	return out
}

func record(unlocked map[string]bool, newly []Achievement) {
	for _, a := range newly {
		unlocked[a.ID] = true
	}
}

func TestEvaluateLevelThresholdsInDefinitionOrder(t *testing.T) {
	p := Profile{Level: 12}
	got := Evaluate(levelDefs(), p, nil, History{}, map[string]bool{})
	assert.Equal(t, []string{"level_5", "level_10"}, ids(got))
}

func TestEvaluateIsIdempotent(t *testing.T) {
	defs := levelDefs()
	unlocked := map[string]bool{}
	p := Profile{Level: 12}

	first := Evaluate(defs, p, nil, History{}, unlocked)
	require.Len(t, first, 2)
	record(unlocked, first)

	assert.Empty(t, Evaluate(defs, p, nil, History{}, unlocked))
}

func TestEvaluateEndToEndLevelUp(t *testing.T) {
	defs := []Achievement{{ID: "level_5", Criteria: Criteria{Type: CriteriaLevelReached, Value: 5}}}
	unlocked := map[string]bool{}
	p := Profile{Level: 4, Streak: 2}

	assert.Empty(t, Evaluate(defs, p, nil, History{}, unlocked))

	p.Level = 5
	got := Evaluate(defs, p, nil, History{}, unlocked)
	assert.Equal(t, []string{"level_5"}, ids(got))
	record(unlocked, got)

	assert.Empty(t, Evaluate(defs, p, nil, History{}, unlocked))
}

func TestEvaluateCriteriaTypes(t *testing.T) {
	defs := []Achievement{
		{ID: "missions_10", Criteria: Criteria{Type: CriteriaMissionsCompleted, Value: 10}},
		{ID: "body_missions_3", Criteria: Criteria{Type: CriteriaMissionsCompleted, Value: 3, Category: "body"}},
		{ID: "mind_missions_3", Criteria: Criteria{Type: CriteriaMissionsCompleted, Value: 3, Category: "mind"}},
		{ID: "goals_1", Criteria: Criteria{Type: CriteriaGoalsCompleted, Value: 1}},
		{ID: "goals_5", Criteria: Criteria{Type: CriteriaGoalsCompleted, Value: 5}},
		{ID: "any_skill_3", Criteria: Criteria{Type: CriteriaSkillLevelReached, Value: 3}},
		{ID: "art_skill_3", Criteria: Criteria{Type: CriteriaSkillLevelReached, Value: 3, Category: "art"}},
		{ID: "streak_7", Criteria: Criteria{Type: CriteriaStreakMaintained, Value: 7}},
		{ID: "streak_30", Criteria: Criteria{Type: CriteriaStreakMaintained, Value: 30}},
		{ID: "bogus", Criteria: Criteria{Type: "weird", Value: 0}},
	}
	p := Profile{Level: 2, Streak: 9}
	skills := []Skill{
		{ID: "guitar", Category: "art", Level: 2},
		{ID: "running", Category: "body", Level: 4},
	}
	h := History{
		MissionsCompleted:  12,
		MissionsByCategory: map[string]int{"body": 5, "mind": 1},
		GoalsCompleted:     2,
	}

	got := Evaluate(defs, p, skills, h, map[string]bool{})
	assert.Equal(t, []string{"missions_10", "body_missions_3", "goals_1", "any_skill_3", "streak_7"}, ids(got))
}

func TestCheckUnlockAlreadyUnlocked(t *testing.T) {
	def := levelDefs()[0]
	ok, err := CheckUnlock(def, Profile{Level: 50}, nil, History{}, map[string]bool{"level_5": true})
	require.ErrorIs(t, err, ErrAlreadyUnlocked)
	assert.False(t, ok)

	ok, err = CheckUnlock(def, Profile{Level: 50}, nil, History{}, nil)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUnlockRecords(t *testing.T) {
	got := Unlock(levelDefs()[:2], t0)
	require.Len(t, got, 2)
	assert.Equal(t, AchievementUnlock{AchievementID: "level_5", UnlockedAt: t0}, got[0])
	assert.Equal(t, "level_10", got[1].AchievementID)
}
