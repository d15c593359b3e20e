package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"liferpg/internal/progression"
)

// Config holds all hunter configuration.
type Config struct {
	// Database file; empty means the default path in the home directory.
	DatabasePath string `yaml:"database_path"`

	Player  PlayerConfig  `yaml:"player"`
	Logging LoggingConfig `yaml:"logging"`
	Effects EffectsConfig `yaml:"effects"`
	Dungeon DungeonConfig `yaml:"dungeon"`
	Server  ServerConfig  `yaml:"server"`
	Catalog CatalogConfig `yaml:"catalog"`
}

type PlayerConfig struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
	File   string `yaml:"file"`
}

type EffectsConfig struct {
	StackPolicy string `yaml:"stack_policy"` // reject, replace, extend
}

type DungeonConfig struct {
	SuccessSkillXP  int `yaml:"success_skill_xp"`
	SuccessCurrency int `yaml:"success_currency"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// CatalogConfig points at YAML catalogs replacing the built-in ones.
type CatalogConfig struct {
	ShopPath         string `yaml:"shop_path"`
	AchievementsPath string `yaml:"achievements_path"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Player: PlayerConfig{
			ID:   "main_hunter",
			Name: "Hunter",
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
		Effects: EffectsConfig{
			StackPolicy: string(progression.DefaultStackPolicy),
		},
		Dungeon: DungeonConfig{
			SuccessSkillXP:  progression.DefaultDungeonRewards.SkillXP,
			SuccessCurrency: progression.DefaultDungeonRewards.Currency,
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8787",
		},
	}
}

// DefaultPath returns ~/.hunter/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".hunter", "config.yaml"), nil
}

// Load reads path over the defaults and applies environment overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("HUNTER_DB"); v != "" {
		c.DatabasePath = v
	}
	if v := os.Getenv("HUNTER_PLAYER"); v != "" {
		c.Player.ID = v
	}
	if v := os.Getenv("HUNTER_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("HUNTER_STACK_POLICY"); v != "" {
		c.Effects.StackPolicy = v
	}
	if v := os.Getenv("HUNTER_ADDR"); v != "" {
		c.Server.Addr = v
	}
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Player.ID) == "" {
		return errors.New("config: player.id is required")
	}
	if _, err := progression.ParseStackPolicy(c.Effects.StackPolicy); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Dungeon.SuccessSkillXP < 0 || c.Dungeon.SuccessCurrency < 0 {
		return errors.New("config: dungeon rewards must not be negative")
	}
	return nil
}

// StackPolicy returns the parsed effect stacking policy.
func (c *Config) StackPolicy() progression.StackPolicy {
	p, err := progression.ParseStackPolicy(c.Effects.StackPolicy)
	if err != nil {
		return progression.DefaultStackPolicy
	}
	return p
}

func (c *Config) DungeonRewards() progression.DungeonRewards {
	return progression.DungeonRewards{
		SkillXP:  c.Dungeon.SuccessSkillXP,
		Currency: c.Dungeon.SuccessCurrency,
	}
}
