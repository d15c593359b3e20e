package progression

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSkillLevelBoundaries(t *testing.T) {
	if got := SkillXPForLevel(1); got != 0 {
		t.Fatalf("SkillXPForLevel(1)=%d, want 0", got)
	}
	l2 := SkillXPForLevel(2)
	if got := SkillLevelForXP(l2 - 1); got != 1 {
		t.Fatalf("SkillLevelForXP(l2-1)=%d, want 1", got)
	}
	if got := SkillLevelForXP(l2); got != 2 {
		t.Fatalf("SkillLevelForXP(l2)=%d, want 2", got)
	}
	l9 := SkillXPForLevel(9)
	if got := SkillLevelForXP(l9); got != 9 {
		t.Fatalf("SkillLevelForXP(l9)=%d, want 9", got)
	}
	if got := SkillLevelForXP(-5); got != 1 {
		t.Fatalf("SkillLevelForXP(-5)=%d, want 1", got)
	}
}

func TestGrantXPRollsOverLevels(t *testing.T) {
	p := Profile{Level: 1}
	need1 := XPToNextLevel(1)
	need2 := XPToNextLevel(2)

	gained := GrantXP(&p, need1+need2+7)
	assert.Equal(t, 2, gained)
	assert.Equal(t, 3, p.Level)
	assert.Equal(t, 7, p.CurrentXP)

	assert.Equal(t, 0, GrantXP(&p, 0))
	assert.Equal(t, 0, GrantXP(&p, -10))
	assert.Equal(t, 7, p.CurrentXP)
}

func TestBoostedXP(t *testing.T) {
	expires := t0.Add(time.Hour)
	effects := []AppliedEffect{
		{Kind: KindXPBoost, Multiplier: 1.5, ActivatedAt: t0, ExpiresAt: &expires},
	}
	assert.Equal(t, 75, BoostedXP(50, effects, t0))
	assert.Equal(t, 50, BoostedXP(50, effects, expires))
	assert.Equal(t, 50, BoostedXP(50, nil, t0))
	assert.Equal(t, 0, BoostedXP(0, effects, t0))
}

func TestPruneExpired(t *testing.T) {
	a := t0.Add(time.Hour)
	b := t0.Add(3 * time.Hour)
	p := Profile{Effects: []AppliedEffect{
		{ID: "a", Kind: KindXPBoost, ActivatedAt: t0, ExpiresAt: &a},
		{ID: "b", Kind: KindXPBoost, ActivatedAt: t0, ExpiresAt: &b},
	}}
	original := p.Effects

	assert.Equal(t, 1, PruneExpired(&p, a))
	assert.Len(t, p.Effects, 1)
	assert.Equal(t, "b", p.Effects[0].ID)
	assert.Len(t, original, 2)
	assert.Equal(t, "a", original[0].ID)
}
