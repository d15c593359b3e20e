package catalog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liferpg/internal/progression"
)

func TestDefaultShopCoversEveryEffectKind(t *testing.T) {
	items, err := DefaultShop()
	require.NoError(t, err)
	require.NotEmpty(t, items)

	kinds := map[progression.EffectKind]bool{}
	for _, it := range items {
		kinds[it.Effect.Kind()] = true
		assert.Positive(t, it.Price, it.ID)
	}
	for _, k := range []progression.EffectKind{
		progression.KindXPBoost, progression.KindStreakRecovery,
		progression.KindSkillXPBoost, progression.KindMissionReroll,
	} {
		assert.True(t, kinds[k], "missing %s", k)
	}

	assert.Equal(t, "xp_potion", items[0].ID)
	boost, ok := items[0].Effect.(progression.XPBoost)
	require.True(t, ok)
	assert.Equal(t, 2.0, boost.Multiplier)
	assert.Equal(t, 24*time.Hour, boost.Duration)
}

func TestDefaultAchievements(t *testing.T) {
	defs, err := DefaultAchievements()
	require.NoError(t, err)
	require.NotEmpty(t, defs)
	assert.Equal(t, "first_mission", defs[0].ID)
	for _, d := range defs {
		assert.True(t, d.Criteria.Type.IsValid(), d.ID)
	}
}

func TestParseShopRejectsBadInput(t *testing.T) {
	cases := map[string]string{
		"unknown kind": `
items:
  - id: a
    price: 1
    effect: {kind: teleport}
`,
		"zero duration": `
items:
  - id: a
    price: 1
    effect: {kind: xp_boost, multiplier: 2, duration_hours: 0}
`,
		"duration overflow": `
items:
  - id: a
    price: 1
    effect: {kind: xp_boost, multiplier: 2, duration_hours: 3000000}
`,
		"duplicate": `
items:
  - id: a
    effect: {kind: mission_reroll}
  - id: a
    effect: {kind: mission_reroll}
`,
		"unknown field": `
items:
  - id: a
    colour: red
    effect: {kind: mission_reroll}
`,
		"missing id": `
items:
  - price: 3
    effect: {kind: mission_reroll}
`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseShop([]byte(doc))
			require.Error(t, err)
		})
	}
}

func TestParseShopAcceptsLongestDuration(t *testing.T) {
	items, err := ParseShop([]byte(`
items:
  - id: a
    price: 1
    effect: {kind: xp_boost, multiplier: 2, duration_hours: 2562047}
`))
	require.NoError(t, err)
	boost, ok := items[0].Effect.(progression.XPBoost)
	require.True(t, ok)
	assert.Positive(t, boost.Duration)
}

func TestParseAchievementsRejectsBadCriteria(t *testing.T) {
	_, err := ParseAchievements([]byte(`
achievements:
  - id: x
    criteria: {type: gold_hoarded, value: 3}
`))
	require.Error(t, err)

	_, err = ParseAchievements([]byte(`
achievements:
  - id: x
    criteria: {type: level_reached, value: 0}
`))
	require.Error(t, err)
}

func TestLoadFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shop.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
items:
  - id: tome
    name: Tome
    price: 9
    effect: {kind: skill_xp_boost, amount: 40}
`), 0o644))

	items, err := LoadShop(path)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, progression.SkillXPBoost{Amount: 40}, items[0].Effect)

	_, err = LoadShop(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)

	defs, err := LoadAchievements("")
	require.NoError(t, err)
	assert.NotEmpty(t, defs)
}
