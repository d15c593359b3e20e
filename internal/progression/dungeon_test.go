package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDungeonOfferConflictsWhileLive(t *testing.T) {
	c := NewDungeonController(DefaultDungeonRewards)
	st := testState()

	offered, err := c.Offer(st, "guitar", t0)
	require.NoError(t, err)
	require.NotNil(t, offered.State.Profile.Dungeon)
	assert.Equal(t, DungeonOffered, offered.State.Profile.Dungeon.State)

	_, err = c.Offer(offered.State, "running", t0)
	var conflict ConflictingEventError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, DungeonOffered, conflict.State)

	declined, err := c.Decline(offered.State, t0)
	require.NoError(t, err)
	assert.Nil(t, declined.State.Profile.Dungeon)
	assert.Equal(t, DungeonDeclined, declined.Event.State)

	again, err := c.Offer(declined.State, "running", t0)
	require.NoError(t, err)
	assert.Equal(t, "running", again.State.Profile.Dungeon.SkillID)
}

func TestDungeonAcceptedBlocksOffer(t *testing.T) {
	c := NewDungeonController(DefaultDungeonRewards)
	offered, err := c.Offer(testState(), "guitar", t0)
	require.NoError(t, err)
	accepted, err := c.Accept(offered.State, t0)
	require.NoError(t, err)
	require.NotNil(t, accepted.State.Profile.Dungeon.AcceptedAt)

	_, err = c.Offer(accepted.State, "guitar", t0)
	require.ErrorAs(t, err, new(ConflictingEventError))

	_, err = c.Decline(accepted.State, t0)
	var bad InvalidTransitionError
	require.ErrorAs(t, err, &bad)
	assert.Equal(t, DungeonAccepted, bad.From)
}

func TestDungeonResolveSuccessPaysRewards(t *testing.T) {
	c := NewDungeonController(DungeonRewards{SkillXP: 100, Currency: 30})
	st := testState()
	offered, _ := c.Offer(st, "guitar", t0)
	accepted, _ := c.Accept(offered.State, t0)

	resolved, err := c.Resolve(accepted.State, true, t0)
	require.NoError(t, err)
	assert.Nil(t, resolved.State.Profile.Dungeon)
	assert.Equal(t, DungeonResolved, resolved.Event.State)
	assert.True(t, resolved.Event.Success)
	assert.Equal(t, 190, resolved.State.Skill("guitar").XP)
	assert.Equal(t, SkillLevelForXP(190), resolved.State.Skill("guitar").Level)
	assert.Equal(t, 530, resolved.State.Profile.Currency)

	_, err = c.Offer(resolved.State, "guitar", t0)
	require.NoError(t, err)
}

func TestDungeonResolveFailurePaysNothing(t *testing.T) {
	c := NewDungeonController(DefaultDungeonRewards)
	st := testState()
	offered, _ := c.Offer(st, "guitar", t0)
	accepted, _ := c.Accept(offered.State, t0)

	resolved, err := c.Resolve(accepted.State, false, t0)
	require.NoError(t, err)
	assert.False(t, resolved.Event.Success)
	assert.Equal(t, 90, resolved.State.Skill("guitar").XP)
	assert.Equal(t, 500, resolved.State.Profile.Currency)
}

func TestDungeonInvalidTransitions(t *testing.T) {
	c := NewDungeonController(DefaultDungeonRewards)
	st := testState()

	_, err := c.Accept(st, t0)
	require.ErrorIs(t, err, ErrNoActiveEvent)
	_, err = c.Decline(st, t0)
	require.ErrorIs(t, err, ErrNoActiveEvent)
	_, err = c.Resolve(st, true, t0)
	require.ErrorIs(t, err, ErrNoActiveEvent)

	offered, _ := c.Offer(st, "guitar", t0)
	_, err = c.Resolve(offered.State, true, t0)
	require.ErrorAs(t, err, new(InvalidTransitionError))

	_, err = c.Offer(st, "chess", t0)
	require.ErrorAs(t, err, new(SkillNotFoundError))
}

func TestDungeonDanglingSkillForceClears(t *testing.T) {
	c := NewDungeonController(DefaultDungeonRewards)
	offered, _ := c.Offer(testState(), "guitar", t0)
	accepted, _ := c.Accept(offered.State, t0)

	gone := accepted.State.Clone()
	gone.Skills = gone.Skills[1:]

	out, err := c.Resolve(gone, true, t0)
	var dangling DanglingReferenceError
	require.ErrorAs(t, err, &dangling)
	assert.Equal(t, "guitar", dangling.SkillID)
	assert.Nil(t, out.State.Profile.Dungeon)
	assert.Equal(t, 500, out.State.Profile.Currency)

	gone2 := offered.State.Clone()
	gone2.Skills = gone2.Skills[1:]
	out, err = c.Accept(gone2, t0)
	require.ErrorAs(t, err, new(DanglingReferenceError))
	assert.Nil(t, out.State.Profile.Dungeon)
}
