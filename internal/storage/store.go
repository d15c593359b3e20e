package storage

import (
	"context"
	"fmt"

	"liferpg/internal/progression"
)

// Store groups the repositories bound to one connection or transaction.
type Store struct {
	Profiles     *ProfileRepo
	Skills       *SkillRepo
	Inventory    *InventoryRepo
	Effects      *EffectRepo
	Ledger       *LedgerRepo
	Achievements *AchievementRepo
	Missions     *MissionRepo
	Goals        *GoalRepo
	Tokens       *TokenRepo
}

func NewStore(db DBTX) *Store {
	return &Store{
		Profiles:     NewProfileRepo(db),
		Skills:       NewSkillRepo(db),
		Inventory:    NewInventoryRepo(db),
		Effects:      NewEffectRepo(db),
		Ledger:       NewLedgerRepo(db),
		Achievements: NewAchievementRepo(db),
		Missions:     NewMissionRepo(db),
		Goals:        NewGoalRepo(db),
		Tokens:       NewTokenRepo(db),
	}
}

// LoadState reads the full progression snapshot for a player, creating a
// level 1 profile on first use.
func (s *Store) LoadState(ctx context.Context, playerID, name string) (progression.State, error) {
	p, err := s.Profiles.Get(ctx, playerID)
	if err != nil {
		return progression.State{}, err
	}
	if p == nil {
		if err := s.Profiles.Insert(ctx, playerID, name); err != nil {
			return progression.State{}, err
		}
		p, err = s.Profiles.Get(ctx, playerID)
		if err != nil {
			return progression.State{}, err
		}
		if p == nil {
			return progression.State{}, fmt.Errorf("load state: profile %q missing after insert", playerID)
		}
	}

	effects, err := s.Effects.List(ctx, playerID)
	if err != nil {
		return progression.State{}, err
	}
	p.Effects = effects

	skills, err := s.Skills.List(ctx, playerID)
	if err != nil {
		return progression.State{}, err
	}
	inv, err := s.Inventory.Get(ctx, playerID)
	if err != nil {
		return progression.State{}, err
	}

	return progression.State{Profile: *p, Skills: skills, Inventory: inv}, nil
}

// SaveState writes every part of the snapshot back.
func (s *Store) SaveState(ctx context.Context, st progression.State) error {
	id := st.Profile.ID
	if err := s.Profiles.Update(ctx, &st.Profile); err != nil {
		return err
	}
	if err := s.Effects.Replace(ctx, id, st.Profile.Effects); err != nil {
		return err
	}
	if err := s.Skills.ReplaceAll(ctx, id, st.Skills); err != nil {
		return err
	}
	return s.Inventory.Replace(ctx, id, st.Inventory)
}

// History gathers the cumulative counters achievements are evaluated on.
func (s *Store) History(ctx context.Context, playerID string) (progression.History, error) {
	total, byCat, err := s.Missions.CompletedCounts(ctx, playerID)
	if err != nil {
		return progression.History{}, err
	}
	goals, err := s.Goals.CompletedCount(ctx, playerID)
	if err != nil {
		return progression.History{}, err
	}
	return progression.History{
		MissionsCompleted:  total,
		MissionsByCategory: byCat,
		GoalsCompleted:     goals,
	}, nil
}
