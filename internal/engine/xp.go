package engine

import (
	"fmt"
	"math"
)

const (
	// MissionBaseXP is the base XP used with rank multipliers.
	MissionBaseXP = 10.0

	// MissionBaseCoins is the base currency used with rank multipliers.
	MissionBaseCoins = 3

	// SkillLevelBonusRate is the per-skill-level XP bonus (5% per level above 1).
	SkillLevelBonusRate = 0.05
)

func rankMultiplier(r Rank) (float64, error) {
	switch r {
	case RankE:
		return 1.0, nil
	case RankD:
		return 2.0, nil
	case RankC:
		return 5.0, nil
	case RankB:
		return 10.0, nil
	case RankA:
		return 25.0, nil
	case RankS:
		return 50.0, nil
	default:
		return 0, fmt.Errorf("invalid rank: %q", r)
	}
}

// MissionRewards computes the base XP and currency a mission pays. The values
// are frozen at creation time; active boosts apply on completion.
func MissionRewards(r Rank, skillLevel int) (xp, coins int, err error) {
	mult, err := rankMultiplier(r)
	if err != nil {
		return 0, 0, err
	}
	if skillLevel < 1 {
		skillLevel = 1
	}
	bonus := 1.0 + float64(skillLevel-1)*SkillLevelBonusRate
	xp = int(math.Round(MissionBaseXP * mult * bonus))
	coins = int(mult) * MissionBaseCoins
	return xp, coins, nil
}
