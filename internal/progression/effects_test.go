package progression

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func testItems() []ShopItem {
	return []ShopItem{
		{ID: "xp_potion", Name: "XP Potion", Price: 100, Effect: XPBoost{Multiplier: 2, Duration: 24 * time.Hour}},
		{ID: "streak_amulet", Name: "Streak Amulet", Price: 200, Effect: StreakRecovery{}},
		{ID: "skill_tome", Name: "Skill Tome", Price: 150, Effect: SkillXPBoost{Amount: 250}},
		{ID: "reroll_scroll", Name: "Reroll Scroll", Price: 50, Effect: MissionReroll{}},
	}
}

func testState() State {
	return State{
		Profile: Profile{ID: "hunter", Name: "Hunter", Level: 3, CurrentXP: 40, Currency: 500, Streak: 4},
		Skills: []Skill{
			{ID: "guitar", Name: "Guitar", Category: "art", XP: 90, Level: SkillLevelForXP(90)},
			{ID: "running", Name: "Running", Category: "body", XP: 400, Level: SkillLevelForXP(400)},
		},
		Inventory: map[string]int{},
	}
}

func TestSkillXPBoostTouchesOnlyTargetSkill(t *testing.T) {
	r := NewResolver(testItems(), StackReject)
	st := testState()

	for _, amount := range []int{1, 7, 250, 10_000} {
		out, err := r.ApplyEffect(st, "skill_tome", SkillXPBoost{Amount: amount}, Target{SkillID: "guitar"}, t0)
		require.NoError(t, err)
		assert.True(t, out.Consumed)
		assert.Nil(t, out.Applied)

		want := st.Clone()
		want.Skills[0].XP += amount
		want.Skills[0].Level = SkillLevelForXP(want.Skills[0].XP)
		if diff := cmp.Diff(want, out.State); diff != "" {
			t.Fatalf("amount=%d state mismatch (-want +got):\n%s", amount, diff)
		}
	}
	assert.Equal(t, 90, st.Skills[0].XP, "input snapshot must not change")
}

func TestSkillXPBoostUnknownSkill(t *testing.T) {
	r := NewResolver(testItems(), StackReject)
	st := testState()

	out, err := r.ApplyEffect(st, "skill_tome", SkillXPBoost{Amount: 10}, Target{SkillID: "chess"}, t0)
	var nf SkillNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "chess", nf.SkillID)
	assert.Equal(t, OutcomeFailed, out.Entry.Outcome)
	assert.NotEmpty(t, out.Entry.Error)
	assert.Empty(t, cmp.Diff(st, out.State))
}

func TestXPBoostActiveWindow(t *testing.T) {
	r := NewResolver(testItems(), StackReject)
	out, err := r.ApplyEffect(testState(), "xp_potion", XPBoost{Multiplier: 2, Duration: 2 * time.Hour}, Target{}, t0)
	require.NoError(t, err)
	require.NotNil(t, out.Applied)
	require.Len(t, out.State.Profile.Effects, 1)

	e := out.State.Profile.Effects[0]
	expires := t0.Add(2 * time.Hour)
	require.Equal(t, expires, *e.ExpiresAt)

	cases := []struct {
		at   time.Time
		want bool
	}{
		{t0.Add(-time.Nanosecond), false},
		{t0, true},
		{t0.Add(time.Hour), true},
		{expires.Add(-time.Nanosecond), true},
		{expires, false},
		{expires.Add(time.Minute), false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, e.ActiveAt(c.at), "at %s", c.at)
	}
}

func TestXPBoostInvalidParameters(t *testing.T) {
	r := NewResolver(testItems(), StackReject)
	for _, eff := range []XPBoost{{Multiplier: 2, Duration: 0}, {Multiplier: 2, Duration: -time.Hour}, {Multiplier: 0, Duration: time.Hour}} {
		out, err := r.ApplyEffect(testState(), "xp_potion", eff, Target{}, t0)
		var ie InvalidEffectError
		require.ErrorAs(t, err, &ie)
		assert.Equal(t, KindXPBoost, ie.Kind)
		assert.Empty(t, out.State.Profile.Effects)
		assert.Equal(t, OutcomeFailed, out.Entry.Outcome)
	}
}

func TestXPBoostStackPolicies(t *testing.T) {
	first := XPBoost{Multiplier: 1.5, Duration: 10 * time.Hour}
	second := XPBoost{Multiplier: 2, Duration: 4 * time.Hour}
	later := t0.Add(time.Hour)

	t.Run("reject", func(t *testing.T) {
		r := NewResolver(testItems(), StackReject)
		out, err := r.ApplyEffect(testState(), "xp_potion", first, Target{}, t0)
		require.NoError(t, err)

		again, err := r.ApplyEffect(out.State, "xp_potion", second, Target{}, later)
		var active EffectActiveError
		require.ErrorAs(t, err, &active)
		assert.Equal(t, OutcomeRejected, again.Entry.Outcome)
		assert.False(t, again.Consumed)
		assert.Empty(t, cmp.Diff(out.State, again.State))
	})

	t.Run("replace", func(t *testing.T) {
		r := NewResolver(testItems(), StackReplace)
		out, err := r.ApplyEffect(testState(), "xp_potion", first, Target{}, t0)
		require.NoError(t, err)

		again, err := r.ApplyEffect(out.State, "xp_potion", second, Target{}, later)
		require.NoError(t, err)
		require.Len(t, again.State.Profile.Effects, 1)
		e := again.State.Profile.Effects[0]
		assert.Equal(t, OutcomeReplaced, again.Entry.Outcome)
		assert.Equal(t, 2.0, e.Multiplier)
		assert.Equal(t, later, e.ActivatedAt)
		assert.Equal(t, later.Add(4*time.Hour), *e.ExpiresAt)
	})

	t.Run("extend", func(t *testing.T) {
		r := NewResolver(testItems(), StackExtend)
		out, err := r.ApplyEffect(testState(), "xp_potion", first, Target{}, t0)
		require.NoError(t, err)

		again, err := r.ApplyEffect(out.State, "xp_potion", second, Target{}, later)
		require.NoError(t, err)
		require.Len(t, again.State.Profile.Effects, 1)
		e := again.State.Profile.Effects[0]
		assert.Equal(t, OutcomeExtended, again.Entry.Outcome)
		assert.Equal(t, 2.0, e.Multiplier)
		assert.Equal(t, t0, e.ActivatedAt)
		assert.Equal(t, t0.Add(14*time.Hour), *e.ExpiresAt)
	})

	t.Run("expired boost does not conflict", func(t *testing.T) {
		r := NewResolver(testItems(), StackReject)
		out, err := r.ApplyEffect(testState(), "xp_potion", first, Target{}, t0)
		require.NoError(t, err)

		_, err = r.ApplyEffect(out.State, "xp_potion", second, Target{}, t0.Add(10*time.Hour))
		require.NoError(t, err)
	})
}

func TestMissionReroll(t *testing.T) {
	r := NewResolver(testItems(), StackReject)
	st := testState()

	_, err := r.ApplyEffect(st, "reroll_scroll", MissionReroll{}, Target{}, t0)
	require.ErrorIs(t, err, ErrNoActiveMission)

	out, err := r.ApplyEffect(st, "reroll_scroll", MissionReroll{}, Target{MissionID: 42}, t0)
	require.NoError(t, err)
	require.NotNil(t, out.Token)
	assert.Equal(t, int64(42), out.Token.MissionID)
	assert.NotEmpty(t, out.Token.ID)
	assert.True(t, out.Consumed)
	assert.Empty(t, cmp.Diff(st, out.State), "reroll must not touch the profile")
}

func TestStreakRecoveryIsBankedNotConsumed(t *testing.T) {
	r := NewResolver(testItems(), StackReject)
	st := testState()
	st.Inventory["streak_amulet"] = 2

	out, err := r.UseItem(st, "streak_amulet", Target{}, t0)
	require.NoError(t, err)
	assert.Equal(t, OutcomeBanked, out.Entry.Outcome)
	assert.False(t, out.Consumed)
	assert.Equal(t, 2, out.State.Inventory["streak_amulet"])
}

func TestUseItemInventory(t *testing.T) {
	r := NewResolver(testItems(), StackReject)
	st := testState()

	_, err := r.UseItem(st, "skill_tome", Target{SkillID: "guitar"}, t0)
	var notOwned ItemNotOwnedError
	require.ErrorAs(t, err, &notOwned)

	out, err := r.UseItem(st, "nope", Target{}, t0)
	var unknown UnknownItemError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, OutcomeFailed, out.Entry.Outcome)

	st.Inventory["skill_tome"] = 1
	out, err = r.UseItem(st, "skill_tome", Target{SkillID: "running"}, t0)
	require.NoError(t, err)
	_, left := out.State.Inventory["skill_tome"]
	assert.False(t, left)
	assert.Equal(t, 650, out.State.Skill("running").XP)
	assert.Equal(t, 1, st.Inventory["skill_tome"])
}

func TestUseItemFailureKeepsInventory(t *testing.T) {
	r := NewResolver(testItems(), StackReject)
	st := testState()
	st.Inventory["reroll_scroll"] = 1

	out, err := r.UseItem(st, "reroll_scroll", Target{}, t0)
	require.True(t, errors.Is(err, ErrNoActiveMission))
	assert.Equal(t, 1, out.State.Inventory["reroll_scroll"])
	assert.Equal(t, "hunter", out.Entry.PlayerID)
	assert.Equal(t, KindMissionReroll, out.Entry.Kind)
}

func TestEveryApplicationProducesOneEntry(t *testing.T) {
	r := NewResolver(testItems(), StackReject)
	st := testState()
	effects := []struct {
		eff    Effect
		target Target
	}{
		{XPBoost{Multiplier: 2, Duration: time.Hour}, Target{}},
		{XPBoost{Multiplier: 2, Duration: 0}, Target{}},
		{StreakRecovery{}, Target{}},
		{SkillXPBoost{Amount: 5}, Target{SkillID: "guitar"}},
		{SkillXPBoost{Amount: 5}, Target{SkillID: "missing"}},
		{MissionReroll{}, Target{}},
		{MissionReroll{}, Target{MissionID: 1}},
		{nil, Target{}},
	}
	seen := map[string]bool{}
	for _, c := range effects {
		out, _ := r.ApplyEffect(st, "x", c.eff, c.target, t0)
		require.NotEmpty(t, out.Entry.ID)
		require.NotEmpty(t, out.Entry.Outcome)
		require.False(t, seen[out.Entry.ID])
		seen[out.Entry.ID] = true
	}
}

func TestPurchase(t *testing.T) {
	r := NewResolver(testItems(), StackReject)
	st := testState()

	next, err := r.Purchase(st, "streak_amulet")
	require.NoError(t, err)
	assert.Equal(t, 300, next.Profile.Currency)
	assert.Equal(t, 1, next.Inventory["streak_amulet"])

	next, err = r.Purchase(next, "streak_amulet")
	require.NoError(t, err)
	assert.Equal(t, 2, next.Inventory["streak_amulet"])

	_, err = r.Purchase(next, "streak_amulet")
	var funds InsufficientFundsError
	require.ErrorAs(t, err, &funds)
	assert.Equal(t, 100, funds.Balance)

	_, err = r.Purchase(next, "dragon")
	require.ErrorAs(t, err, new(UnknownItemError))
}

func TestParseStackPolicy(t *testing.T) {
	p, err := ParseStackPolicy("")
	require.NoError(t, err)
	assert.Equal(t, StackReject, p)

	p, err = ParseStackPolicy(" Extend ")
	require.NoError(t, err)
	assert.Equal(t, StackExtend, p)

	_, err = ParseStackPolicy("multiply")
	require.Error(t, err)
}
