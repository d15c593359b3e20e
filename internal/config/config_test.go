package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liferpg/internal/progression"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "main_hunter", cfg.Player.ID)
	assert.Equal(t, progression.StackReject, cfg.StackPolicy())
	assert.Equal(t, progression.DefaultDungeonRewards, cfg.DungeonRewards())
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
player:
  id: jin
effects:
  stack_policy: extend
dungeon:
  success_skill_xp: 300
`), 0o644))

	t.Setenv("HUNTER_DB", "/tmp/hunter-test.db")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "jin", cfg.Player.ID)
	assert.Equal(t, "Hunter", cfg.Player.Name)
	assert.Equal(t, progression.StackExtend, cfg.StackPolicy())
	assert.Equal(t, 300, cfg.DungeonRewards().SkillXP)
	assert.Equal(t, progression.DefaultDungeonRewards.Currency, cfg.DungeonRewards().Currency)
	assert.Equal(t, "/tmp/hunter-test.db", cfg.DatabasePath)
}

func TestLoadRejectsInvalidPolicy(t *testing.T) {
	t.Setenv("HUNTER_STACK_POLICY", "stack-forever")
	_, err := Load("")
	require.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Player.ID = "sung"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sung", loaded.Player.ID)
}
