package progression

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBreakStreakConsumesOneUnitPerBreak(t *testing.T) {
	r := NewResolver(testItems(), StackReject)
	st := testState()
	st.Profile.Streak = 5
	st.Inventory["streak_amulet"] = 2

	first := r.BreakStreak(st, t0)
	require.True(t, first.Broken)
	require.True(t, first.Restored)
	require.NotNil(t, first.Entry)
	assert.Equal(t, OutcomeConsumed, first.Entry.Outcome)
	assert.Equal(t, 5, first.State.Profile.Streak)
	assert.Equal(t, 1, first.State.Inventory["streak_amulet"])

	second := r.BreakStreak(first.State, t0.AddDate(0, 0, 3))
	require.True(t, second.Restored)
	assert.Equal(t, 5, second.State.Profile.Streak)
	assert.Equal(t, 0, second.State.Inventory["streak_amulet"])

	third := r.BreakStreak(second.State, t0.AddDate(0, 0, 6))
	assert.True(t, third.Broken)
	assert.False(t, third.Restored)
	assert.Nil(t, third.Entry)
	assert.Equal(t, 0, third.State.Profile.Streak)

	assert.Equal(t, 2, st.Inventory["streak_amulet"], "input snapshot must not change")
}

func TestBreakStreakWithZeroStreakIsNoop(t *testing.T) {
	r := NewResolver(testItems(), StackReject)
	st := testState()
	st.Profile.Streak = 0
	st.Inventory["streak_amulet"] = 1

	out := r.BreakStreak(st, t0)
	assert.False(t, out.Broken)
	assert.Equal(t, 1, out.State.Inventory["streak_amulet"])
}

func TestRecordActivity(t *testing.T) {
	r := NewResolver(testItems(), StackReject)
	st := testState()
	st.Profile.Streak = 0

	day1 := r.RecordActivity(st, t0)
	assert.Equal(t, 1, day1.State.Profile.Streak)

	sameDay := r.RecordActivity(day1.State, t0.Add(5*time.Hour))
	assert.Equal(t, 1, sameDay.State.Profile.Streak)

	day2 := r.RecordActivity(sameDay.State, t0.AddDate(0, 0, 1))
	assert.Equal(t, 2, day2.State.Profile.Streak)
	assert.False(t, day2.Broken)

	gap := r.RecordActivity(day2.State, t0.AddDate(0, 0, 4))
	assert.True(t, gap.Broken)
	assert.False(t, gap.Restored)
	assert.Equal(t, 1, gap.State.Profile.Streak)
}

func TestRecordActivityAfterGapUsesBankedUnit(t *testing.T) {
	r := NewResolver(testItems(), StackReject)
	st := testState()
	last := Day(t0)
	st.Profile.Streak = 7
	st.Profile.LastActiveDay = &last
	st.Inventory["streak_amulet"] = 1

	out := r.RecordActivity(st, t0.AddDate(0, 0, 3))
	assert.True(t, out.Restored)
	assert.Equal(t, 8, out.State.Profile.Streak)
	assert.Equal(t, Day(t0.AddDate(0, 0, 3)), *out.State.Profile.LastActiveDay)
}

func TestCheckStreakDoesNotConsumeTwiceOnSameDay(t *testing.T) {
	r := NewResolver(testItems(), StackReject)
	st := testState()
	last := Day(t0)
	st.Profile.Streak = 3
	st.Profile.LastActiveDay = &last
	st.Inventory["streak_amulet"] = 2

	now := t0.AddDate(0, 0, 5)
	first := r.CheckStreak(st, now)
	require.True(t, first.Restored)

	again := r.CheckStreak(first.State, now.Add(2*time.Hour))
	assert.False(t, again.Broken)
	assert.Equal(t, 1, again.State.Inventory["streak_amulet"])
	assert.Equal(t, 3, again.State.Profile.Streak)
}

func TestOneBankedUnitCoversALongGap(t *testing.T) {
	r := NewResolver(testItems(), StackReject)
	st := testState()
	st.Profile.Streak = 7
	last := Day(t0)
	st.Profile.LastActiveDay = &last
	st.Inventory["streak_amulet"] = 1

	now := t0.AddDate(0, 0, 30)
	out := r.CheckStreak(st, now)
	require.True(t, out.Restored)
	assert.Equal(t, 7, out.State.Profile.Streak)
	assert.Equal(t, 0, out.State.Inventory["streak_amulet"])
	require.NotNil(t, out.State.Profile.LastActiveDay)
	assert.Equal(t, Day(now).AddDate(0, 0, -1), *out.State.Profile.LastActiveDay)

	next := r.RecordActivity(out.State, now)
	assert.Nil(t, next.Entry, "bridged gap is not a second break")
	assert.Equal(t, 8, next.State.Profile.Streak)
}

func TestCheckStreakYesterdayIsNotABreak(t *testing.T) {
	r := NewResolver(testItems(), StackReject)
	st := testState()
	last := Day(t0)
	st.Profile.LastActiveDay = &last

	out := r.CheckStreak(st, t0.AddDate(0, 0, 1).Add(10*time.Hour))
	assert.False(t, out.Broken)
	assert.Equal(t, 4, out.State.Profile.Streak)
}
