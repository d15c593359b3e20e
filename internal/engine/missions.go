package engine

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"liferpg/internal/progression"
	"liferpg/internal/storage"
)

type AddMissionInput struct {
	Title    string
	Category string
	Rank     Rank
	// SkillID optionally links the mission to a skill that receives its XP.
	SkillID string
	// XPReward overrides the rank-derived XP when positive.
	XPReward int
	// Recurrence makes the mission come back after each completion.
	Recurrence Recurrence
}

func (s *Service) AddMission(ctx context.Context, in AddMissionInput) (*storage.Mission, error) {
	title, err := normalizeTitle(in.Title)
	if err != nil {
		return nil, err
	}
	rank := in.Rank
	if rank == "" {
		rank = DefaultRank
	}
	if !rank.IsValid() {
		return nil, InvalidRankError{Rank: rank}
	}
	if !in.Recurrence.IsValid() {
		return nil, fmt.Errorf("invalid recurrence: %q", in.Recurrence)
	}

	var mission *storage.Mission
	_, err = s.run(ctx, "mission_add", func(ctx context.Context, t *txn) (step, error) {
		skillLevel := 1
		var skillID *string
		if in.SkillID != "" {
			sk := t.state.Skill(in.SkillID)
			if sk == nil {
				return step{State: t.state, Err: progression.SkillNotFoundError{SkillID: in.SkillID}}, nil
			}
			skillLevel = sk.Level
			id := sk.ID
			skillID = &id
		}

		xp, coins, err := MissionRewards(rank, skillLevel)
		if err != nil {
			return step{}, err
		}
		if in.XPReward > 0 {
			xp = in.XPReward
		}
		ins := storage.MissionInsert{
			ProfileID:  s.playerID,
			Title:      title,
			Category:   ParseCategory(in.Category),
			SkillID:    skillID,
			XPReward:   xp,
			CoinReward: coins,
			Recurrence: string(in.Recurrence),
			CreatedAt:  t.now,
		}
		id, err := t.store.Missions.Insert(ctx, ins)
		if err != nil {
			return step{}, err
		}
		mission, err = t.store.Missions.Get(ctx, s.playerID, id)
		if err != nil {
			return step{}, err
		}
		s.log.Info("mission added", zap.Int64("mission", id), zap.String("rank", string(rank)), zap.Int("xp", xp),
			zap.String("recurrence", string(in.Recurrence)))
		return step{State: t.state}, nil
	})
	if err != nil {
		return nil, err
	}
	return mission, nil
}

// ListMissions returns missions with the given status, or all when status is empty.
func (s *Service) ListMissions(ctx context.Context, status string) ([]storage.Mission, error) {
	return storage.NewMissionRepo(s.db).List(ctx, s.playerID, status)
}

type CompleteResult struct {
	Result
	MissionID   int64
	BaseXP      int
	XPAwarded   int
	Multiplier  float64
	CoinsEarned int
	LevelBefore int
	LevelAfter  int
	LevelUp     bool
	// SkillLevelUp is set when the linked skill gained a level.
	SkillLevelUp bool
	// NextDueAt is set for recurring missions, which stay active.
	NextDueAt *time.Time
}

// CompleteMission closes an active mission, or reschedules a recurring one
// for its next due day. Profile XP is boosted by the strongest active
// xp_boost; the linked skill receives the same amount. The day counts towards
// the streak.
func (s *Service) CompleteMission(ctx context.Context, id int64) (*CompleteResult, error) {
	out := CompleteResult{MissionID: id}
	res, err := s.run(ctx, "mission_done", func(ctx context.Context, t *txn) (step, error) {
		m, err := t.store.Missions.Get(ctx, s.playerID, id)
		if err != nil {
			return step{}, err
		}
		if m == nil {
			return step{State: t.state, Err: NotFoundError{Kind: "mission", ID: strconv.FormatInt(id, 10)}}, nil
		}
		if m.Status != storage.StatusActive {
			return step{State: t.state, Err: AlreadyDoneError{Kind: "mission", ID: id}}, nil
		}
		if m.NextDueAt != nil && t.now.Before(*m.NextDueAt) {
			return step{State: t.state, Err: NotDueError{ID: id, DueAt: *m.NextDueAt}}, nil
		}

		next := t.state.Clone()
		out.BaseXP = m.XPReward
		out.Multiplier = progression.XPMultiplier(next.Profile.Effects, t.now)
		out.XPAwarded = progression.BoostedXP(m.XPReward, next.Profile.Effects, t.now)
		out.LevelBefore = next.Profile.Level
		progression.GrantXP(&next.Profile, out.XPAwarded)
		out.LevelAfter = next.Profile.Level
		out.LevelUp = out.LevelAfter > out.LevelBefore
		next.Profile.Currency += m.CoinReward
		out.CoinsEarned = m.CoinReward

		if m.SkillID != nil {
			// A deleted skill keeps the mission completable; only profile XP is paid.
			if sk := next.Skill(*m.SkillID); sk != nil {
				before := sk.Level
				progression.AddSkillXP(sk, out.XPAwarded)
				out.SkillLevelUp = sk.Level > before
			}
		}

		if m.Recurrence != "" {
			nextDue, err := NextDueDate(t.now, Recurrence(m.Recurrence))
			if err != nil {
				return step{}, err
			}
			if err := t.store.Missions.Reschedule(ctx, s.playerID, id, t.now, nextDue, out.XPAwarded); err != nil {
				return step{}, err
			}
			out.NextDueAt = &nextDue
		} else if err := t.store.Missions.MarkDone(ctx, s.playerID, id, t.now, out.XPAwarded); err != nil {
			return step{}, err
		}

		act := s.resolver.RecordActivity(next, t.now)
		var entries []progression.LedgerEntry
		if act.Entry != nil {
			entries = append(entries, *act.Entry)
		}

		s.log.Info("mission completed",
			zap.Int64("mission", id),
			zap.Int("xp", out.XPAwarded),
			zap.Float64("multiplier", out.Multiplier),
			zap.Int("streak", act.State.Profile.Streak))
		return step{State: act.State, Entries: entries}, nil
	})
	if err != nil {
		return nil, err
	}
	out.Result = *res
	return &out, nil
}
