package progression

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// StackPolicy decides what happens when an xp_boost is applied while another
// one is still running.
type StackPolicy string

const (
	StackReject  StackPolicy = "reject"
	StackReplace StackPolicy = "replace"
	StackExtend  StackPolicy = "extend"
)

const DefaultStackPolicy = StackReject

func ParseStackPolicy(input string) (StackPolicy, error) {
	s := StackPolicy(strings.TrimSpace(strings.ToLower(input)))
	switch s {
	case "":
		return DefaultStackPolicy, nil
	case StackReject, StackReplace, StackExtend:
		return s, nil
	default:
		return "", fmt.Errorf("invalid stack policy: %q", input)
	}
}

// Target carries the caller's choice for effects that need one.
type Target struct {
	SkillID   string
	MissionID int64
}

// RerollToken authorises exactly one regeneration of MissionID.
type RerollToken struct {
	ID        string
	MissionID int64
	IssuedAt  time.Time
}

type EffectOutcome struct {
	State    State
	Entry    LedgerEntry
	Applied  *AppliedEffect
	Token    *RerollToken
	Consumed bool
}

// Resolver applies shop item effects to state snapshots.
type Resolver struct {
	items  []ShopItem
	byID   map[string]int
	policy StackPolicy
	newID  func() string
}

func NewResolver(items []ShopItem, policy StackPolicy) *Resolver {
	if policy == "" {
		policy = DefaultStackPolicy
	}
	byID := make(map[string]int, len(items))
	for i, it := range items {
		byID[it.ID] = i
	}
	return &Resolver{
		items:  items,
		byID:   byID,
		policy: policy,
		newID:  uuid.NewString,
	}
}

func (r *Resolver) Policy() StackPolicy { return r.policy }

// Items returns the catalog in definition order.
func (r *Resolver) Items() []ShopItem {
	return append([]ShopItem(nil), r.items...)
}

func (r *Resolver) Item(id string) (ShopItem, bool) {
	i, ok := r.byID[id]
	if !ok {
		return ShopItem{}, false
	}
	return r.items[i], true
}

// Purchase deducts the item price from the profile and adds one unit to the
// inventory.
func (r *Resolver) Purchase(st State, itemID string) (State, error) {
	item, ok := r.Item(itemID)
	if !ok {
		return st, UnknownItemError{ItemID: itemID}
	}
	if st.Profile.Currency < item.Price {
		return st, InsufficientFundsError{Price: item.Price, Balance: st.Profile.Currency}
	}
	next := st.Clone()
	next.Profile.Currency -= item.Price
	next.Inventory[item.ID]++
	return next, nil
}

// UseItem applies the effect of an owned item and decrements the inventory
// when the effect is consumed.
func (r *Resolver) UseItem(st State, itemID string, target Target, now time.Time) (EffectOutcome, error) {
	item, ok := r.Item(itemID)
	if !ok {
		err := UnknownItemError{ItemID: itemID}
		return r.failed(st, itemID, "", now, OutcomeFailed, err), err
	}
	if st.Inventory[itemID] <= 0 {
		err := ItemNotOwnedError{ItemID: itemID}
		return r.failed(st, itemID, item.Effect.Kind(), now, OutcomeFailed, err), err
	}

	out, err := r.ApplyEffect(st, itemID, item.Effect, target, now)
	if err != nil {
		return out, err
	}
	if out.Consumed {
		out.State.Inventory[itemID]--
		if out.State.Inventory[itemID] <= 0 {
			delete(out.State.Inventory, itemID)
		}
	}
	return out, nil
}

// ApplyEffect applies eff to a copy of st. The input snapshot is never
// modified; on failure the returned state equals the input.
func (r *Resolver) ApplyEffect(st State, itemID string, eff Effect, target Target, now time.Time) (EffectOutcome, error) {
	if eff == nil {
		err := InvalidEffectError{Reason: "missing effect"}
		return r.failed(st, itemID, "", now, OutcomeFailed, err), err
	}

	next := st.Clone()
	out := EffectOutcome{Entry: r.entry(st, itemID, eff.Kind(), now)}

	switch e := eff.(type) {
	case XPBoost:
		if e.Duration <= 0 {
			err := InvalidEffectError{Kind: KindXPBoost, Reason: "duration must be positive"}
			return r.failed(st, itemID, KindXPBoost, now, OutcomeFailed, err), err
		}
		if e.Multiplier <= 0 {
			err := InvalidEffectError{Kind: KindXPBoost, Reason: "multiplier must be positive"}
			return r.failed(st, itemID, KindXPBoost, now, OutcomeFailed, err), err
		}
		applied, outcome, err := r.stackXPBoost(&next.Profile, itemID, e, now)
		if err != nil {
			return r.failed(st, itemID, KindXPBoost, now, OutcomeRejected, err), err
		}
		out.Applied = applied
		out.Consumed = true
		out.Entry.Outcome = outcome
		out.Entry.Detail = fmt.Sprintf("x%.2f until %s", applied.Multiplier, applied.ExpiresAt.Format(time.RFC3339))

	case StreakRecovery:
		out.Entry.Outcome = OutcomeBanked
		out.Entry.Detail = fmt.Sprintf("%d unit(s) banked", st.Inventory[itemID])

	case SkillXPBoost:
		if e.Amount <= 0 {
			err := InvalidEffectError{Kind: KindSkillXPBoost, Reason: "amount must be positive"}
			return r.failed(st, itemID, KindSkillXPBoost, now, OutcomeFailed, err), err
		}
		i := next.skillIndex(target.SkillID)
		if i < 0 {
			err := SkillNotFoundError{SkillID: target.SkillID}
			return r.failed(st, itemID, KindSkillXPBoost, now, OutcomeFailed, err), err
		}
		before := next.Skills[i].Level
		AddSkillXP(&next.Skills[i], e.Amount)
		out.Consumed = true
		out.Entry.Outcome = OutcomeApplied
		out.Entry.Detail = fmt.Sprintf("+%d xp to %s (level %d -> %d)", e.Amount, target.SkillID, before, next.Skills[i].Level)

	case MissionReroll:
		if target.MissionID <= 0 {
			err := ErrNoActiveMission
			return r.failed(st, itemID, KindMissionReroll, now, OutcomeFailed, err), err
		}
		out.Token = &RerollToken{ID: r.newID(), MissionID: target.MissionID, IssuedAt: now}
		out.Consumed = true
		out.Entry.Outcome = OutcomeApplied
		out.Entry.Detail = fmt.Sprintf("reroll token for mission %d", target.MissionID)

	default:
		err := InvalidEffectError{Kind: eff.Kind(), Reason: "unsupported effect"}
		return r.failed(st, itemID, eff.Kind(), now, OutcomeFailed, err), err
	}

	out.State = next
	return out, nil
}

func (r *Resolver) stackXPBoost(p *Profile, itemID string, e XPBoost, now time.Time) (*AppliedEffect, LedgerOutcome, error) {
	expires := now.Add(e.Duration)
	fresh := AppliedEffect{
		ID:          r.newID(),
		ItemID:      itemID,
		Kind:        KindXPBoost,
		Multiplier:  e.Multiplier,
		ActivatedAt: now,
		ExpiresAt:   &expires,
	}

	idx := -1
	for i := range p.Effects {
		if p.Effects[i].Kind == KindXPBoost && p.Effects[i].ActiveAt(now) {
			idx = i
			break
		}
	}
	if idx < 0 {
		p.Effects = append(p.Effects, fresh)
		return &fresh, OutcomeApplied, nil
	}

	cur := p.Effects[idx]
	switch r.policy {
	case StackReplace:
		p.Effects[idx] = fresh
		return &fresh, OutcomeReplaced, nil
	case StackExtend:
		extended := cur.ExpiresAt.Add(e.Duration)
		cur.ExpiresAt = &extended
		if e.Multiplier > cur.Multiplier {
			cur.Multiplier = e.Multiplier
		}
		p.Effects[idx] = cur
		return &cur, OutcomeExtended, nil
	default:
		return nil, "", EffectActiveError{Kind: KindXPBoost, ExpiresAt: cur.ExpiresAt.Format(time.RFC3339)}
	}
}

func (r *Resolver) entry(st State, itemID string, kind EffectKind, now time.Time) LedgerEntry {
	return LedgerEntry{
		ID:       r.newID(),
		PlayerID: st.Profile.ID,
		At:       now,
		ItemID:   itemID,
		Kind:     kind,
	}
}

func (r *Resolver) failed(st State, itemID string, kind EffectKind, now time.Time, outcome LedgerOutcome, err error) EffectOutcome {
	entry := r.entry(st, itemID, kind, now)
	entry.Outcome = outcome
	entry.Error = err.Error()
	return EffectOutcome{State: st.Clone(), Entry: entry}
}
