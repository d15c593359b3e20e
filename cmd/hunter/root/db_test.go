package root

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"liferpg/internal/config"
)

type syncCountingCore struct {
	zapcore.Core
	syncs *int
}

func (c syncCountingCore) Sync() error {
	*c.syncs++
	return c.Core.Sync()
}

// useTestConfig writes cfg to a temp file, points the persistent flags at it
// and swaps in a logger that counts Sync calls.
func useTestConfig(t *testing.T, edit func(cfg *config.Config)) *int {
	t.Helper()
	t.Setenv("HUNTER_DB", "")
	t.Setenv("HUNTER_PLAYER", "")
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.DatabasePath = filepath.Join(dir, "hunter.db")
	if edit != nil {
		edit(cfg)
	}
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, cfg.Save(path))

	syncs := 0
	prevConfig, prevDB, prevLogger := configPath, dbPath, newLogger
	configPath, dbPath = path, ""
	newLogger = func(config.LoggingConfig) (*zap.Logger, error) {
		return zap.New(syncCountingCore{Core: zapcore.NewNopCore(), syncs: &syncs}), nil
	}
	t.Cleanup(func() {
		configPath, dbPath, newLogger = prevConfig, prevDB, prevLogger
	})
	return &syncs
}

func TestOpenAppUsesBuiltInCatalogs(t *testing.T) {
	syncs := useTestConfig(t, nil)

	a, cleanup, err := openApp(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, a.svc.Shop())
	assert.NotEmpty(t, a.svc.AchievementDefs())
	assert.Equal(t, 0, *syncs)

	cleanup()
	assert.Equal(t, 1, *syncs)
}

func TestOpenAppSyncsLoggerOnFailure(t *testing.T) {
	cases := map[string]func(cfg *config.Config){
		"missing shop": func(cfg *config.Config) {
			cfg.Catalog.ShopPath = filepath.Join(t.TempDir(), "nope.yaml")
		},
		"missing achievements": func(cfg *config.Config) {
			cfg.Catalog.AchievementsPath = filepath.Join(t.TempDir(), "nope.yaml")
		},
		"database under a file": func(cfg *config.Config) {
			blocker := filepath.Join(filepath.Dir(cfg.DatabasePath), "blocker")
			require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
			cfg.DatabasePath = filepath.Join(blocker, "hunter.db")
		},
	}
	for name, edit := range cases {
		t.Run(name, func(t *testing.T) {
			syncs := useTestConfig(t, edit)

			_, _, err := openApp(context.Background())
			require.Error(t, err)
			assert.Equal(t, 1, *syncs)
		})
	}
}
