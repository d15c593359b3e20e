package progression

import (
	"time"
)

type EffectKind string

const (
	KindXPBoost        EffectKind = "xp_boost"
	KindStreakRecovery EffectKind = "streak_recovery"
	KindSkillXPBoost   EffectKind = "skill_xp_boost"
	KindMissionReroll  EffectKind = "mission_reroll"
)

func (k EffectKind) IsValid() bool {
	switch k {
	case KindXPBoost, KindStreakRecovery, KindSkillXPBoost, KindMissionReroll:
		return true
	default:
		return false
	}
}

// Effect is the closed set of consumable effects. Only the types in this
// package implement it.
type Effect interface {
	Kind() EffectKind
	isEffect()
}

// XPBoost multiplies mission XP while active.
type XPBoost struct {
	Multiplier float64
	Duration   time.Duration
}

// StreakRecovery is banked and consumed when a streak break is detected.
type StreakRecovery struct{}

// SkillXPBoost grants Amount XP to one skill immediately.
type SkillXPBoost struct {
	Amount int
}

// MissionReroll authorises one regeneration of an active mission.
type MissionReroll struct{}

func (XPBoost) Kind() EffectKind        { return KindXPBoost }
func (StreakRecovery) Kind() EffectKind { return KindStreakRecovery }
func (SkillXPBoost) Kind() EffectKind   { return KindSkillXPBoost }
func (MissionReroll) Kind() EffectKind  { return KindMissionReroll }

func (XPBoost) isEffect()        {}
func (StreakRecovery) isEffect() {}
func (SkillXPBoost) isEffect()   {}
func (MissionReroll) isEffect()  {}

type ShopItem struct {
	ID          string
	Name        string
	Description string
	Price       int
	Effect      Effect
}

// AppliedEffect is a time-limited effect attached to a profile.
type AppliedEffect struct {
	ID          string
	ItemID      string
	Kind        EffectKind
	Multiplier  float64
	ActivatedAt time.Time
	ExpiresAt   *time.Time
}

// ActiveAt reports whether the effect covers t. The end bound is exclusive and
// effects without an expiry are never active.
func (e AppliedEffect) ActiveAt(t time.Time) bool {
	if e.ExpiresAt == nil {
		return false
	}
	return !t.Before(e.ActivatedAt) && t.Before(*e.ExpiresAt)
}

type DungeonState string

const (
	DungeonNone     DungeonState = ""
	DungeonOffered  DungeonState = "offered"
	DungeonAccepted DungeonState = "accepted"
	DungeonDeclined DungeonState = "declined"
	DungeonResolved DungeonState = "resolved"
)

// Live reports whether the state blocks a new offer.
func (s DungeonState) Live() bool {
	return s == DungeonOffered || s == DungeonAccepted
}

type DungeonEvent struct {
	SkillID    string
	State      DungeonState
	OfferedAt  time.Time
	AcceptedAt *time.Time
	ResolvedAt *time.Time
	Success    bool
}

type Profile struct {
	ID            string
	Name          string
	Level         int
	CurrentXP     int
	Currency      int
	Streak        int
	LastActiveDay *time.Time
	Effects       []AppliedEffect
	Dungeon       *DungeonEvent
}

type Skill struct {
	ID       string
	Name     string
	Category string
	XP       int
	Level    int
}

type CriteriaType string

const (
	CriteriaMissionsCompleted CriteriaType = "missions_completed"
	CriteriaLevelReached      CriteriaType = "level_reached"
	CriteriaGoalsCompleted    CriteriaType = "goals_completed"
	CriteriaSkillLevelReached CriteriaType = "skill_level_reached"
	CriteriaStreakMaintained  CriteriaType = "streak_maintained"
)

func (c CriteriaType) IsValid() bool {
	switch c {
	case CriteriaMissionsCompleted, CriteriaLevelReached, CriteriaGoalsCompleted,
		CriteriaSkillLevelReached, CriteriaStreakMaintained:
		return true
	default:
		return false
	}
}

type Criteria struct {
	Type     CriteriaType
	Value    int
	Category string
}

type Achievement struct {
	ID          string
	Name        string
	Description string
	Reward      int
	Criteria    Criteria
}

type AchievementUnlock struct {
	AchievementID string
	UnlockedAt    time.Time
}

// History holds the cumulative counters kept outside the profile.
type History struct {
	MissionsCompleted  int
	MissionsByCategory map[string]int
	GoalsCompleted     int
}

type LedgerOutcome string

const (
	OutcomeApplied  LedgerOutcome = "applied"
	OutcomeExtended LedgerOutcome = "extended"
	OutcomeReplaced LedgerOutcome = "replaced"
	OutcomeBanked   LedgerOutcome = "banked"
	OutcomeConsumed LedgerOutcome = "consumed"
	OutcomeRejected LedgerOutcome = "rejected"
	OutcomeFailed   LedgerOutcome = "failed"
)

type LedgerEntry struct {
	ID       string
	PlayerID string
	At       time.Time
	ItemID   string
	Kind     EffectKind
	Outcome  LedgerOutcome
	Error    string
	Detail   string
}

// State is the snapshot every engine operation reads and returns.
type State struct {
	Profile   Profile
	Skills    []Skill
	Inventory map[string]int
}

// Clone returns a deep copy so callers can mutate the result freely.
func (s State) Clone() State {
	out := State{
		Profile: s.Profile,
		Skills:  append([]Skill(nil), s.Skills...),
	}
	if s.Profile.Effects != nil {
		out.Profile.Effects = append([]AppliedEffect(nil), s.Profile.Effects...)
	}
	if s.Profile.LastActiveDay != nil {
		d := *s.Profile.LastActiveDay
		out.Profile.LastActiveDay = &d
	}
	if s.Profile.Dungeon != nil {
		ev := *s.Profile.Dungeon
		out.Profile.Dungeon = &ev
	}
	out.Inventory = make(map[string]int, len(s.Inventory))
	for k, v := range s.Inventory {
		out.Inventory[k] = v
	}
	return out
}

func (s State) skillIndex(id string) int {
	for i := range s.Skills {
		if s.Skills[i].ID == id {
			return i
		}
	}
	return -1
}

// Skill returns the skill with the given id, or nil.
func (s State) Skill(id string) *Skill {
	if i := s.skillIndex(id); i >= 0 {
		return &s.Skills[i]
	}
	return nil
}

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// FixedClock always returns T.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time { return c.T }
