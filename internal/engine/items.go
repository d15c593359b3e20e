package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"liferpg/internal/progression"
	"liferpg/internal/storage"
)

// Buy spends currency on one unit of a shop item.
func (s *Service) Buy(ctx context.Context, itemID string) (*Result, error) {
	return s.run(ctx, "buy", func(ctx context.Context, t *txn) (step, error) {
		next, err := s.resolver.Purchase(t.state, itemID)
		if err != nil {
			return step{State: t.state, Err: err}, nil
		}
		s.log.Info("item purchased", zap.String("item", itemID), zap.Int("currency", next.Profile.Currency))
		return step{State: next}, nil
	})
}

type UseResult struct {
	Result
	Entry   progression.LedgerEntry
	Applied *progression.AppliedEffect
	Token   *progression.RerollToken
}

// Use applies an owned item. Exactly one ledger entry is written for the
// application, whether it succeeds or fails. For mission_reroll the target
// mission must be active; the issued token is stored for RedeemReroll.
func (s *Service) Use(ctx context.Context, itemID string, target progression.Target) (*UseResult, error) {
	var out UseResult
	res, err := s.run(ctx, "use", func(ctx context.Context, t *txn) (step, error) {
		if item, ok := s.resolver.Item(itemID); ok && item.Effect != nil &&
			item.Effect.Kind() == progression.KindMissionReroll && target.MissionID > 0 {
			m, err := t.store.Missions.Get(ctx, s.playerID, target.MissionID)
			if err != nil {
				return step{}, err
			}
			if m == nil || m.Status != storage.StatusActive {
				target.MissionID = 0
			}
		}

		eo, useErr := s.resolver.UseItem(t.state, itemID, target, t.now)
		out.Entry = eo.Entry
		out.Applied = eo.Applied
		out.Token = eo.Token

		if useErr == nil && eo.Token != nil {
			err := t.store.Tokens.Insert(ctx, storage.RerollToken{
				ID:        eo.Token.ID,
				ProfileID: s.playerID,
				MissionID: eo.Token.MissionID,
				IssuedAt:  eo.Token.IssuedAt,
			})
			if err != nil {
				return step{}, err
			}
		}
		if useErr == nil {
			s.log.Info("item used",
				zap.String("item", itemID),
				zap.String("outcome", string(eo.Entry.Outcome)),
				zap.String("detail", eo.Entry.Detail))
		}
		return step{State: eo.State, Entries: []progression.LedgerEntry{eo.Entry}, Err: useErr}, nil
	})
	if res != nil {
		out.Result = *res
	}
	if err != nil {
		if res == nil {
			return nil, err
		}
		return &out, err
	}
	return &out, nil
}

// RedeemReroll spends a reroll token to replace the objective of its mission.
func (s *Service) RedeemReroll(ctx context.Context, tokenID, title, category string) (*storage.Mission, error) {
	title, err := normalizeTitle(title)
	if err != nil {
		return nil, err
	}

	var mission *storage.Mission
	_, err = s.run(ctx, "reroll", func(ctx context.Context, t *txn) (step, error) {
		tok, err := t.store.Tokens.Get(ctx, s.playerID, tokenID)
		if err != nil {
			return step{}, err
		}
		if tok == nil {
			return step{State: t.state, Err: NotFoundError{Kind: "reroll token", ID: tokenID}}, nil
		}
		if tok.RedeemedAt != nil {
			return step{State: t.state, Err: ErrTokenRedeemed}, nil
		}
		m, err := t.store.Missions.Get(ctx, s.playerID, tok.MissionID)
		if err != nil {
			return step{}, err
		}
		if m == nil || m.Status != storage.StatusActive {
			return step{State: t.state, Err: progression.ErrNoActiveMission}, nil
		}

		cat := ParseCategory(category)
		if cat == "" {
			cat = m.Category
		}
		if err := t.store.Missions.Retitle(ctx, s.playerID, m.ID, title, cat); err != nil {
			return step{}, err
		}
		if err := t.store.Tokens.Redeem(ctx, s.playerID, tok.ID, t.now); err != nil {
			return step{}, err
		}
		m.Title = title
		m.Category = cat
		mission = m
		s.log.Info("mission rerolled", zap.Int64("mission", m.ID), zap.String("token", tok.ID))
		return step{State: t.state}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("reroll: %w", err)
	}
	return mission, nil
}
