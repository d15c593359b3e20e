package engine

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"liferpg/internal/storage"
)

func (s *Service) AddGoal(ctx context.Context, title, category string) (*storage.Goal, error) {
	title, err := normalizeTitle(title)
	if err != nil {
		return nil, err
	}
	var goal *storage.Goal
	_, err = s.run(ctx, "goal_add", func(ctx context.Context, t *txn) (step, error) {
		id, err := t.store.Goals.Insert(ctx, s.playerID, title, ParseCategory(category), t.now)
		if err != nil {
			return step{}, err
		}
		goal, err = t.store.Goals.Get(ctx, s.playerID, id)
		if err != nil {
			return step{}, err
		}
		return step{State: t.state}, nil
	})
	if err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *Service) ListGoals(ctx context.Context) ([]storage.Goal, error) {
	return storage.NewGoalRepo(s.db).ListActive(ctx, s.playerID)
}

// CompleteGoal closes a goal. Goals pay no XP; they count towards goal
// achievements.
func (s *Service) CompleteGoal(ctx context.Context, id int64) (*Result, error) {
	return s.run(ctx, "goal_done", func(ctx context.Context, t *txn) (step, error) {
		g, err := t.store.Goals.Get(ctx, s.playerID, id)
		if err != nil {
			return step{}, err
		}
		if g == nil {
			return step{State: t.state, Err: NotFoundError{Kind: "goal", ID: strconv.FormatInt(id, 10)}}, nil
		}
		if g.Status != storage.StatusActive {
			return step{State: t.state, Err: AlreadyDoneError{Kind: "goal", ID: id}}, nil
		}
		if err := t.store.Goals.MarkDone(ctx, s.playerID, id, t.now); err != nil {
			return step{}, err
		}
		s.log.Info("goal completed", zap.Int64("goal", id))
		return step{State: t.state}, nil
	})
}
