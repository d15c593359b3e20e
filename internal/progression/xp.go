package progression

import (
	"math"
	"time"
)

const (
	// XPCurveCoef scales both curves: XP_req = 100 * (Level^1.5).
	XPCurveCoef = 100.0

	// MaxLevel caps the search so corrupted XP values cannot loop forever.
	MaxLevel = 1_000_000
)

// XPToNextLevel returns the XP a profile at the given level must accumulate
// (in CurrentXP) to reach the next level.
func XPToNextLevel(level int) int {
	if level < 1 {
		level = 1
	}
	req := XPCurveCoef * math.Pow(float64(level), 1.5)
	// Ceil so floating point rounding never makes a threshold easier.
	return int(math.Ceil(req))
}

// GrantXP adds xp to the profile, rolling CurrentXP over into levels.
// It returns the number of levels gained.
func GrantXP(p *Profile, xp int) int {
	if p.Level < 1 {
		p.Level = 1
	}
	if xp <= 0 {
		return 0
	}
	gained := 0
	p.CurrentXP += xp
	for p.Level < MaxLevel {
		need := XPToNextLevel(p.Level)
		if p.CurrentXP < need {
			break
		}
		p.CurrentXP -= need
		p.Level++
		gained++
	}
	return gained
}

// SkillXPForLevel returns the cumulative skill XP needed to be at level.
// Level 1 requires 0 XP.
func SkillXPForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	req := XPCurveCoef * math.Pow(float64(level-1), 1.5)
	return int(math.Ceil(req))
}

// SkillLevelForXP returns the highest level L such that xp >= SkillXPForLevel(L).
func SkillLevelForXP(xp int) int {
	if xp <= 0 {
		return 1
	}

	// Exponential search upper bound, then binary search.
	low := 1
	high := 2
	for SkillXPForLevel(high) <= xp {
		low = high
		high *= 2
		if high > MaxLevel {
			break
		}
	}

	for low+1 < high {
		mid := low + (high-low)/2
		if SkillXPForLevel(mid) <= xp {
			low = mid
		} else {
			high = mid
		}
	}
	return low
}

// AddSkillXP adds xp to the skill and re-derives its level.
func AddSkillXP(s *Skill, xp int) {
	s.XP += xp
	if s.XP < 0 {
		s.XP = 0
	}
	s.Level = SkillLevelForXP(s.XP)
}

// XPMultiplier returns the multiplier of the xp_boost active at now, or 1.
// With more than one instance the largest one wins.
func XPMultiplier(effects []AppliedEffect, now time.Time) float64 {
	mult := 1.0
	for _, e := range effects {
		if e.Kind != KindXPBoost || !e.ActiveAt(now) {
			continue
		}
		if e.Multiplier > mult {
			mult = e.Multiplier
		}
	}
	return mult
}

// BoostedXP applies the active xp_boost to a mission's base XP.
func BoostedXP(base int, effects []AppliedEffect, now time.Time) int {
	if base <= 0 {
		return 0
	}
	return int(math.Round(float64(base) * XPMultiplier(effects, now)))
}

// PruneExpired drops effects whose expiry is at or before now.
// It returns how many were removed.
func PruneExpired(p *Profile, now time.Time) int {
	kept := p.Effects[:0:0]
	removed := 0
	for _, e := range p.Effects {
		if e.ExpiresAt != nil && !now.Before(*e.ExpiresAt) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	p.Effects = kept
	return removed
}
