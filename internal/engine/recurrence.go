package engine

import (
	"fmt"
	"strings"
	"time"

	"liferpg/internal/progression"
)

// Recurrence is how often a mission comes back after completion. The zero
// value is a one-shot mission.
type Recurrence string

const (
	RecurrenceNone    Recurrence = ""
	RecurrenceDaily   Recurrence = "daily"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
)

func (r Recurrence) IsValid() bool {
	switch r {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly:
		return true
	default:
		return false
	}
}

func ParseRecurrence(input string) (Recurrence, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "", "once", "none":
		return RecurrenceNone, nil
	case "day":
		s = string(RecurrenceDaily)
	case "week":
		s = string(RecurrenceWeekly)
	case "month":
		s = string(RecurrenceMonthly)
	}
	r := Recurrence(s)
	if !r.IsValid() {
		return "", fmt.Errorf("invalid recurrence: %q", input)
	}
	return r, nil
}

// NextDueDate returns the start of the day on which a mission completed at
// now becomes due again.
func NextDueDate(now time.Time, r Recurrence) (time.Time, error) {
	day := progression.Day(now)
	switch r {
	case RecurrenceDaily:
		return day.AddDate(0, 0, 1), nil
	case RecurrenceWeekly:
		return day.AddDate(0, 0, 7), nil
	case RecurrenceMonthly:
		return day.AddDate(0, 1, 0), nil
	default:
		return time.Time{}, fmt.Errorf("invalid recurrence: %q", r)
	}
}
