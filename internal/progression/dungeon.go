package progression

import "time"

// DungeonRewards is what a successful dungeon event pays out.
type DungeonRewards struct {
	SkillXP  int
	Currency int
}

var DefaultDungeonRewards = DungeonRewards{SkillXP: 150, Currency: 50}

type DungeonOutcome struct {
	State State
	// Event is the event after the transition, including terminal ones that
	// have already been cleared from the profile.
	Event DungeonEvent
}

// DungeonController drives the dungeon event lifecycle:
// none -> offered -> accepted -> resolved, or offered -> declined.
type DungeonController struct {
	Rewards DungeonRewards
}

func NewDungeonController(rewards DungeonRewards) *DungeonController {
	return &DungeonController{Rewards: rewards}
}

// Offer opens a new event for skillID. At most one live event per profile.
func (c *DungeonController) Offer(st State, skillID string, now time.Time) (DungeonOutcome, error) {
	if ev := st.Profile.Dungeon; ev != nil && ev.State.Live() {
		return DungeonOutcome{State: st.Clone()}, ConflictingEventError{SkillID: ev.SkillID, State: ev.State}
	}
	if st.Skill(skillID) == nil {
		return DungeonOutcome{State: st.Clone()}, SkillNotFoundError{SkillID: skillID}
	}

	next := st.Clone()
	ev := DungeonEvent{SkillID: skillID, State: DungeonOffered, OfferedAt: now}
	next.Profile.Dungeon = &ev
	return DungeonOutcome{State: next, Event: ev}, nil
}

func (c *DungeonController) Accept(st State, now time.Time) (DungeonOutcome, error) {
	ev, err := c.live(st, DungeonAccepted, DungeonOffered)
	if err != nil {
		return c.clearOnDangling(st, err)
	}

	next := st.Clone()
	ev.State = DungeonAccepted
	ev.AcceptedAt = &now
	next.Profile.Dungeon = &ev
	return DungeonOutcome{State: next, Event: ev}, nil
}

func (c *DungeonController) Decline(st State, now time.Time) (DungeonOutcome, error) {
	cur := st.Profile.Dungeon
	if cur == nil || cur.State == DungeonNone {
		return DungeonOutcome{State: st.Clone()}, ErrNoActiveEvent
	}
	if cur.State != DungeonOffered {
		return DungeonOutcome{State: st.Clone()}, InvalidTransitionError{From: cur.State, To: DungeonDeclined}
	}

	next := st.Clone()
	ev := *cur
	ev.State = DungeonDeclined
	ev.ResolvedAt = &now
	next.Profile.Dungeon = nil
	return DungeonOutcome{State: next, Event: ev}, nil
}

// Resolve closes an accepted event with the outcome reported by the challenge
// flow. Success pays the configured rewards.
func (c *DungeonController) Resolve(st State, success bool, now time.Time) (DungeonOutcome, error) {
	ev, err := c.live(st, DungeonResolved, DungeonAccepted)
	if err != nil {
		return c.clearOnDangling(st, err)
	}

	next := st.Clone()
	if success {
		AddSkillXP(next.Skill(ev.SkillID), c.Rewards.SkillXP)
		next.Profile.Currency += c.Rewards.Currency
	}
	ev.State = DungeonResolved
	ev.Success = success
	ev.ResolvedAt = &now
	next.Profile.Dungeon = nil
	return DungeonOutcome{State: next, Event: ev}, nil
}

// live returns a copy of the current event after checking it is in state from
// and that its skill still exists.
func (c *DungeonController) live(st State, to DungeonState, from DungeonState) (DungeonEvent, error) {
	cur := st.Profile.Dungeon
	if cur == nil || cur.State == DungeonNone {
		return DungeonEvent{}, ErrNoActiveEvent
	}
	if cur.State != from {
		return DungeonEvent{}, InvalidTransitionError{From: cur.State, To: to}
	}
	if st.Skill(cur.SkillID) == nil {
		return DungeonEvent{}, DanglingReferenceError{SkillID: cur.SkillID}
	}
	return *cur, nil
}

func (c *DungeonController) clearOnDangling(st State, err error) (DungeonOutcome, error) {
	next := st.Clone()
	if _, ok := err.(DanglingReferenceError); ok {
		ev := *next.Profile.Dungeon
		next.Profile.Dungeon = nil
		return DungeonOutcome{State: next, Event: ev}, err
	}
	return DungeonOutcome{State: next}, err
}
