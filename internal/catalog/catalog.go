package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"liferpg/internal/progression"
)

//go:embed data/shop.yaml
var defaultShop []byte

//go:embed data/achievements.yaml
var defaultAchievements []byte

type effectDoc struct {
	Kind          string  `yaml:"kind"`
	Multiplier    float64 `yaml:"multiplier"`
	DurationHours float64 `yaml:"duration_hours"`
	Amount        int     `yaml:"amount"`
}

type itemDoc struct {
	ID          string    `yaml:"id"`
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	Price       int       `yaml:"price"`
	Effect      effectDoc `yaml:"effect"`
}

type shopDoc struct {
	Items []itemDoc `yaml:"items"`
}

type criteriaDoc struct {
	Type     string `yaml:"type"`
	Value    int    `yaml:"value"`
	Category string `yaml:"category"`
}

type achievementDoc struct {
	ID          string      `yaml:"id"`
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Reward      int         `yaml:"reward"`
	Criteria    criteriaDoc `yaml:"criteria"`
}

type achievementsDoc struct {
	Achievements []achievementDoc `yaml:"achievements"`
}

// DefaultShop returns the built-in shop items.
func DefaultShop() ([]progression.ShopItem, error) {
	return ParseShop(defaultShop)
}

// DefaultAchievements returns the built-in achievement definitions.
func DefaultAchievements() ([]progression.Achievement, error) {
	return ParseAchievements(defaultAchievements)
}

// LoadShop reads a shop catalog from path, or the built-in one when path is empty.
func LoadShop(path string) ([]progression.ShopItem, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultShop()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read shop catalog: %w", err)
	}
	return ParseShop(data)
}

// LoadAchievements reads achievement definitions from path, or the built-in
// ones when path is empty.
func LoadAchievements(path string) ([]progression.Achievement, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultAchievements()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read achievements catalog: %w", err)
	}
	return ParseAchievements(data)
}

func ParseShop(data []byte) ([]progression.ShopItem, error) {
	var doc shopDoc
	if err := decodeStrict(data, &doc); err != nil {
		return nil, fmt.Errorf("parse shop catalog: %w", err)
	}

	seen := map[string]bool{}
	out := make([]progression.ShopItem, 0, len(doc.Items))
	for i, it := range doc.Items {
		id := strings.TrimSpace(it.ID)
		if id == "" {
			return nil, fmt.Errorf("shop item #%d: id is required", i+1)
		}
		if seen[id] {
			return nil, fmt.Errorf("shop item %q: duplicate id", id)
		}
		seen[id] = true
		if it.Price < 0 {
			return nil, fmt.Errorf("shop item %q: price must not be negative", id)
		}
		eff, err := toEffect(it.Effect)
		if err != nil {
			return nil, fmt.Errorf("shop item %q: %w", id, err)
		}
		out = append(out, progression.ShopItem{
			ID:          id,
			Name:        it.Name,
			Description: it.Description,
			Price:       it.Price,
			Effect:      eff,
		})
	}
	return out, nil
}

func ParseAchievements(data []byte) ([]progression.Achievement, error) {
	var doc achievementsDoc
	if err := decodeStrict(data, &doc); err != nil {
		return nil, fmt.Errorf("parse achievements catalog: %w", err)
	}

	seen := map[string]bool{}
	out := make([]progression.Achievement, 0, len(doc.Achievements))
	for i, a := range doc.Achievements {
		id := strings.TrimSpace(a.ID)
		if id == "" {
			return nil, fmt.Errorf("achievement #%d: id is required", i+1)
		}
		if seen[id] {
			return nil, fmt.Errorf("achievement %q: duplicate id", id)
		}
		seen[id] = true

		ct := progression.CriteriaType(strings.TrimSpace(a.Criteria.Type))
		if !ct.IsValid() {
			return nil, fmt.Errorf("achievement %q: invalid criteria type %q", id, a.Criteria.Type)
		}
		if a.Criteria.Value <= 0 {
			return nil, fmt.Errorf("achievement %q: criteria value must be positive", id)
		}
		out = append(out, progression.Achievement{
			ID:          id,
			Name:        a.Name,
			Description: a.Description,
			Reward:      a.Reward,
			Criteria: progression.Criteria{
				Type:     ct,
				Value:    a.Criteria.Value,
				Category: strings.TrimSpace(a.Criteria.Category),
			},
		})
	}
	return out, nil
}

// maxDurationHours is the longest duration a time.Duration can hold.
var maxDurationHours = math.Floor(float64(math.MaxInt64) / float64(time.Hour))

func toEffect(d effectDoc) (progression.Effect, error) {
	kind := progression.EffectKind(strings.TrimSpace(d.Kind))
	switch kind {
	case progression.KindXPBoost:
		if d.DurationHours <= 0 || d.Multiplier <= 0 {
			return nil, progression.InvalidEffectError{Kind: kind, Reason: "multiplier and duration_hours must be positive"}
		}
		if d.DurationHours > maxDurationHours {
			return nil, progression.InvalidEffectError{Kind: kind, Reason: fmt.Sprintf("duration_hours must be at most %.0f", maxDurationHours)}
		}
		return progression.XPBoost{
			Multiplier: d.Multiplier,
			Duration:   time.Duration(d.DurationHours * float64(time.Hour)),
		}, nil
	case progression.KindStreakRecovery:
		return progression.StreakRecovery{}, nil
	case progression.KindSkillXPBoost:
		if d.Amount <= 0 {
			return nil, progression.InvalidEffectError{Kind: kind, Reason: "amount must be positive"}
		}
		return progression.SkillXPBoost{Amount: d.Amount}, nil
	case progression.KindMissionReroll:
		return progression.MissionReroll{}, nil
	default:
		return nil, progression.InvalidEffectError{Reason: fmt.Sprintf("unknown kind %q", d.Kind)}
	}
}

func decodeStrict(data []byte, v any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(v)
}
