package progression

import (
	"fmt"
	"time"
)

type StreakOutcome struct {
	State State

	// Broken is true when a gap in activity was detected.
	Broken bool
	// Restored is true when a banked streak_recovery unit absorbed the break.
	Restored bool
	// Entry is set when a unit was consumed.
	Entry *LedgerEntry
}

// Day truncates t to its UTC calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(Day(to).Sub(Day(from)).Hours() / 24)
}

// BreakStreak handles a detected streak break. One banked streak_recovery unit
// keeps the streak at its pre-break value whatever the length of the gap, and
// bridges the last active day to yesterday; without one the streak drops to 0.
func (r *Resolver) BreakStreak(st State, now time.Time) StreakOutcome {
	next := st.Clone()
	pre := next.Profile.Streak
	if pre <= 0 {
		return StreakOutcome{State: next}
	}

	out := StreakOutcome{Broken: true}
	itemID := r.bankedRecovery(next.Inventory)
	if itemID == "" {
		next.Profile.Streak = 0
		out.State = next
		return out
	}

	next.Inventory[itemID]--
	if next.Inventory[itemID] <= 0 {
		delete(next.Inventory, itemID)
	}
	next.Profile.Streak = pre
	yesterday := Day(now).AddDate(0, 0, -1)
	next.Profile.LastActiveDay = &yesterday

	entry := r.entry(st, itemID, KindStreakRecovery, now)
	entry.Outcome = OutcomeConsumed
	entry.Detail = fmt.Sprintf("streak %d kept, %d unit(s) left", pre, next.Inventory[itemID])

	out.Restored = true
	out.Entry = &entry
	out.State = next
	return out
}

// CheckStreak detects a break since the last active day and handles it.
func (r *Resolver) CheckStreak(st State, now time.Time) StreakOutcome {
	last := st.Profile.LastActiveDay
	if st.Profile.Streak <= 0 || last == nil || daysBetween(*last, now) <= 1 {
		return StreakOutcome{State: st.Clone()}
	}
	return r.BreakStreak(st, now)
}

// RecordActivity registers a completed mission on now's day and updates the
// streak.
func (r *Resolver) RecordActivity(st State, now time.Time) StreakOutcome {
	out := r.CheckStreak(st, now)
	p := &out.State.Profile
	today := Day(now)

	switch {
	case p.LastActiveDay == nil:
		p.Streak = 1
	case daysBetween(*p.LastActiveDay, today) == 0:
		if p.Streak == 0 {
			p.Streak = 1
		}
	case daysBetween(*p.LastActiveDay, today) == 1:
		p.Streak++
	default:
		p.Streak = 1
	}
	p.LastActiveDay = &today
	return out
}

func (r *Resolver) bankedRecovery(inv map[string]int) string {
	for _, it := range r.items {
		if it.Effect == nil || it.Effect.Kind() != KindStreakRecovery {
			continue
		}
		if inv[it.ID] > 0 {
			return it.ID
		}
	}
	return ""
}
