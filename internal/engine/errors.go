package engine

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrTokenRedeemed = errors.New("reroll token already redeemed")
	ErrTitleRequired = errors.New("title is required")
)

// NotFoundError is returned when a mission, goal or token id does not exist
// for the current player.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// AlreadyDoneError is returned when completing a mission or goal twice.
type AlreadyDoneError struct {
	Kind string
	ID   int64
}

func (e AlreadyDoneError) Error() string {
	return fmt.Sprintf("%s %d is already done", e.Kind, e.ID)
}

// DuplicateSkillError is returned when adding a skill whose id is taken.
type DuplicateSkillError struct {
	SkillID string
}

func (e DuplicateSkillError) Error() string {
	return fmt.Sprintf("skill %q already exists", e.SkillID)
}

type InvalidRankError struct {
	Rank Rank
}

func (e InvalidRankError) Error() string {
	return fmt.Sprintf("invalid rank: %q", e.Rank)
}

// NotDueError is returned when a recurring mission is completed again before
// its next due day.
type NotDueError struct {
	ID    int64
	DueAt time.Time
}

func (e NotDueError) Error() string {
	return fmt.Sprintf("mission %d is not due until %s", e.ID, e.DueAt.Format("2006-01-02"))
}
