package progression

import (
	"errors"
	"fmt"
)

var (
	// ErrNoActiveMission is returned when a reroll is used without a designated mission.
	ErrNoActiveMission = errors.New("no active mission designated")

	// ErrAlreadyUnlocked marks an achievement that was unlocked before.
	// Evaluate treats it as a no-op and never returns it.
	ErrAlreadyUnlocked = errors.New("achievement already unlocked")

	// ErrNoActiveEvent is returned by dungeon actions when nothing is offered.
	ErrNoActiveEvent = errors.New("no active dungeon event")
)

// InvalidEffectError indicates a malformed effect or a parameter out of range.
type InvalidEffectError struct {
	Kind   EffectKind
	Reason string
}

func (e InvalidEffectError) Error() string {
	if e.Kind == "" {
		return fmt.Sprintf("invalid effect: %s", e.Reason)
	}
	return fmt.Sprintf("invalid %s effect: %s", e.Kind, e.Reason)
}

type SkillNotFoundError struct {
	SkillID string
}

func (e SkillNotFoundError) Error() string {
	return fmt.Sprintf("skill %q not found", e.SkillID)
}

// DanglingReferenceError is returned when a live dungeon event points at a
// skill that no longer exists. The event has been cleared.
type DanglingReferenceError struct {
	SkillID string
}

func (e DanglingReferenceError) Error() string {
	return fmt.Sprintf("dungeon event references missing skill %q", e.SkillID)
}

type ConflictingEventError struct {
	SkillID string
	State   DungeonState
}

func (e ConflictingEventError) Error() string {
	return fmt.Sprintf("a dungeon event for skill %q is already %s", e.SkillID, e.State)
}

type InvalidTransitionError struct {
	From DungeonState
	To   DungeonState
}

func (e InvalidTransitionError) Error() string {
	from := string(e.From)
	if from == "" {
		from = "none"
	}
	return fmt.Sprintf("dungeon event cannot move from %s to %s", from, e.To)
}

// EffectActiveError is returned under the reject policy when an effect of the
// same kind is still running.
type EffectActiveError struct {
	Kind      EffectKind
	ExpiresAt string
}

func (e EffectActiveError) Error() string {
	return fmt.Sprintf("%s already active until %s", e.Kind, e.ExpiresAt)
}

type UnknownItemError struct {
	ItemID string
}

func (e UnknownItemError) Error() string {
	return fmt.Sprintf("unknown shop item %q", e.ItemID)
}

type ItemNotOwnedError struct {
	ItemID string
}

func (e ItemNotOwnedError) Error() string {
	return fmt.Sprintf("no %q left in inventory", e.ItemID)
}

type InsufficientFundsError struct {
	Price   int
	Balance int
}

func (e InsufficientFundsError) Error() string {
	return fmt.Sprintf("price %d exceeds balance %d", e.Price, e.Balance)
}
