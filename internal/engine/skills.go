package engine

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"liferpg/internal/progression"
)

func (s *Service) AddSkill(ctx context.Context, name, category string) (*progression.Skill, error) {
	name = strings.TrimSpace(name)
	id := SkillID(name)
	if id == "" {
		return nil, ErrTitleRequired
	}

	var added progression.Skill
	_, err := s.run(ctx, "skill_add", func(ctx context.Context, t *txn) (step, error) {
		if t.state.Skill(id) != nil {
			return step{State: t.state, Err: DuplicateSkillError{SkillID: id}}, nil
		}
		next := t.state.Clone()
		added = progression.Skill{ID: id, Name: name, Category: ParseCategory(category), Level: 1}
		next.Skills = append(next.Skills, added)
		s.log.Info("skill added", zap.String("skill", id))
		return step{State: next}, nil
	})
	if err != nil {
		return nil, err
	}
	return &added, nil
}

func (s *Service) ListSkills(ctx context.Context) ([]progression.Skill, error) {
	res, err := s.run(ctx, "skill_list", func(ctx context.Context, t *txn) (step, error) {
		return step{State: t.state}, nil
	})
	if err != nil {
		return nil, err
	}
	return res.State.Skills, nil
}

// DeleteSkill removes a skill. A live dungeon event bound to it is left in
// place and cleared by its next transition.
func (s *Service) DeleteSkill(ctx context.Context, id string) error {
	_, err := s.run(ctx, "skill_rm", func(ctx context.Context, t *txn) (step, error) {
		if t.state.Skill(id) == nil {
			return step{State: t.state, Err: progression.SkillNotFoundError{SkillID: id}}, nil
		}
		next := t.state.Clone()
		kept := next.Skills[:0]
		for _, sk := range next.Skills {
			if sk.ID != id {
				kept = append(kept, sk)
			}
		}
		next.Skills = kept
		s.log.Info("skill deleted", zap.String("skill", id))
		return step{State: next}, nil
	})
	return err
}
