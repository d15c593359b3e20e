package engine

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"liferpg/internal/progression"
)

type DungeonResult struct {
	Result
	Event progression.DungeonEvent
}

type dungeonOp func(st progression.State, now time.Time) (progression.DungeonOutcome, error)

// dungeonStep persists the controller outcome. A dangling skill reference
// clears the event, so that state is saved even though the call fails.
func (s *Service) dungeonStep(ctx context.Context, name string, op dungeonOp) (*DungeonResult, error) {
	var out DungeonResult
	res, err := s.run(ctx, name, func(ctx context.Context, t *txn) (step, error) {
		do, opErr := op(t.state, t.now)
		out.Event = do.Event
		var dangling progression.DanglingReferenceError
		if errors.As(opErr, &dangling) {
			s.log.Warn("dungeon event cleared", zap.String("skill", dangling.SkillID))
		} else if opErr == nil {
			s.log.Info("dungeon transition",
				zap.String("skill", do.Event.SkillID),
				zap.String("state", string(do.Event.State)))
		}
		return step{State: do.State, Err: opErr}, nil
	})
	if res != nil {
		out.Result = *res
	}
	if err != nil {
		return &out, err
	}
	return &out, nil
}

func (s *Service) OfferDungeon(ctx context.Context, skillID string) (*DungeonResult, error) {
	return s.dungeonStep(ctx, "dungeon_offer", func(st progression.State, now time.Time) (progression.DungeonOutcome, error) {
		return s.dungeon.Offer(st, skillID, now)
	})
}

func (s *Service) AcceptDungeon(ctx context.Context) (*DungeonResult, error) {
	return s.dungeonStep(ctx, "dungeon_accept", s.dungeon.Accept)
}

func (s *Service) DeclineDungeon(ctx context.Context) (*DungeonResult, error) {
	return s.dungeonStep(ctx, "dungeon_decline", s.dungeon.Decline)
}

// ResolveDungeon closes the accepted event with the challenge outcome.
func (s *Service) ResolveDungeon(ctx context.Context, success bool) (*DungeonResult, error) {
	return s.dungeonStep(ctx, "dungeon_resolve", func(st progression.State, now time.Time) (progression.DungeonOutcome, error) {
		return s.dungeon.Resolve(st, success, now)
	})
}
