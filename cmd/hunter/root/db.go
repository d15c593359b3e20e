package root

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"liferpg/internal/catalog"
	"liferpg/internal/config"
	"liferpg/internal/engine"
	"liferpg/internal/logging"
	"liferpg/internal/storage"
)

func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.DatabasePath = dbPath
	}
	return cfg, nil
}

func openDB(ctx context.Context, cfg *config.Config) (*sql.DB, func(), error) {
	path, err := storage.ResolveDBPath(cfg.DatabasePath)
	if err != nil {
		return nil, nil, err
	}
	db, err := storage.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}
	return db, cleanup, nil
}

type app struct {
	cfg *config.Config
	svc *engine.Service
	log *zap.Logger
}

// newLogger is swapped in tests.
var newLogger = logging.New

func openApp(ctx context.Context) (_ *app, _ func(), err error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		if err != nil {
			_ = log.Sync()
		}
	}()

	shop, err := catalog.LoadShop(cfg.Catalog.ShopPath)
	if err != nil {
		return nil, nil, err
	}
	achievements, err := catalog.LoadAchievements(cfg.Catalog.AchievementsPath)
	if err != nil {
		return nil, nil, err
	}

	db, closeDB, err := openDB(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	svc := engine.NewService(db, engine.Options{
		PlayerID:     cfg.Player.ID,
		PlayerName:   cfg.Player.Name,
		Shop:         shop,
		Achievements: achievements,
		StackPolicy:  cfg.StackPolicy(),
		Rewards:      cfg.DungeonRewards(),
		Logger:       log,
	})
	cleanup := func() {
		closeDB()
		_ = log.Sync()
	}
	return &app{cfg: cfg, svc: svc, log: log}, cleanup, nil
}

func openService(ctx context.Context) (*engine.Service, func(), error) {
	a, cleanup, err := openApp(ctx)
	if err != nil {
		return nil, nil, err
	}
	return a.svc, cleanup, nil
}
