package engine

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"go.uber.org/zap"

	"liferpg/internal/progression"
	"liferpg/internal/storage"
)

type Options struct {
	PlayerID     string
	PlayerName   string
	Shop         []progression.ShopItem
	Achievements []progression.Achievement
	StackPolicy  progression.StackPolicy
	Rewards      progression.DungeonRewards
	Clock        progression.Clock
	Logger       *zap.Logger
}

// Service runs progression operations against the database. Every operation
// loads the player's snapshot, applies a pure engine function and writes the
// result back inside one transaction.
type Service struct {
	db           *sql.DB
	resolver     *progression.Resolver
	dungeon      *progression.DungeonController
	achievements []progression.Achievement
	clock        progression.Clock
	log          *zap.Logger
	playerID     string
	playerName   string
}

func NewService(db *sql.DB, opts Options) *Service {
	if opts.PlayerID == "" {
		opts.PlayerID = "main_hunter"
	}
	if opts.PlayerName == "" {
		opts.PlayerName = "Hunter"
	}
	if opts.Clock == nil {
		opts.Clock = progression.SystemClock{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Rewards == (progression.DungeonRewards{}) {
		opts.Rewards = progression.DefaultDungeonRewards
	}
	return &Service{
		db:           db,
		resolver:     progression.NewResolver(opts.Shop, opts.StackPolicy),
		dungeon:      progression.NewDungeonController(opts.Rewards),
		achievements: opts.Achievements,
		clock:        opts.Clock,
		log:          opts.Logger.With(zap.String("player", opts.PlayerID)),
		playerID:     opts.PlayerID,
		playerName:   opts.PlayerName,
	}
}

func (s *Service) PlayerID() string                           { return s.playerID }
func (s *Service) Shop() []progression.ShopItem               { return s.resolver.Items() }
func (s *Service) StackPolicy() progression.StackPolicy       { return s.resolver.Policy() }
func (s *Service) AchievementDefs() []progression.Achievement { return s.achievements }

// Result is the common part of every state-changing operation.
type Result struct {
	State progression.State
	// Entries are the ledger entries written by the operation.
	Entries []progression.LedgerEntry
	// Unlocked are achievements newly unlocked by the operation.
	Unlocked []progression.Achievement
	// Streak is the outcome of the break check run before the operation.
	Streak progression.StreakOutcome
}

// txn is what an operation sees inside its transaction.
type txn struct {
	store  *storage.Store
	state  progression.State
	now    time.Time
	streak progression.StreakOutcome
}

// step is what an operation hands back. Err is a domain error: the state and
// entries are still persisted and Err is returned after commit.
type step struct {
	State   progression.State
	Entries []progression.LedgerEntry
	Err     error
}

type opFunc func(ctx context.Context, t *txn) (step, error)

// run executes op in a transaction. Before op it prunes expired effects and
// checks the streak; after op it evaluates achievements, saves the state and
// appends ledger entries. Infrastructure errors roll back; domain errors from
// step.Err are committed along with their ledger entries.
func (s *Service) run(ctx context.Context, name string, op opFunc) (*Result, error) {
	var (
		res    Result
		domErr error
	)
	err := storage.WithTx(ctx, s.db, func(st *storage.Store) error {
		state, err := st.LoadState(ctx, s.playerID, s.playerName)
		if err != nil {
			return err
		}
		now := s.clock.Now()

		pruned := state.Clone()
		if n := progression.PruneExpired(&pruned.Profile, now); n > 0 {
			s.log.Debug("expired effects pruned", zap.Int("count", n))
		}
		streak := s.resolver.CheckStreak(pruned, now)
		var entries []progression.LedgerEntry
		if streak.Entry != nil {
			entries = append(entries, *streak.Entry)
		}
		if streak.Broken {
			s.log.Info("streak break detected",
				zap.Bool("restored", streak.Restored),
				zap.Int("streak", streak.State.Profile.Streak))
		}

		out, err := op(ctx, &txn{store: st, state: streak.State, now: now, streak: streak})
		if err != nil {
			return err
		}
		entries = append(entries, out.Entries...)
		next := out.State

		unlocked, err := s.evaluate(ctx, st, &next, now)
		if err != nil {
			return err
		}

		if err := st.SaveState(ctx, next); err != nil {
			return err
		}
		for _, e := range entries {
			if err := st.Ledger.Append(ctx, e); err != nil {
				return err
			}
		}

		res = Result{State: next, Entries: entries, Unlocked: unlocked, Streak: streak}
		domErr = out.Err
		return nil
	})
	if err != nil {
		s.log.Error("operation failed", zap.String("op", name), zap.Error(err))
		return nil, err
	}
	if domErr != nil {
		s.log.Warn("operation rejected", zap.String("op", name), zap.Error(domErr))
		return &res, domErr
	}
	s.log.Debug("operation applied", zap.String("op", name), zap.Int("ledger_entries", len(res.Entries)))
	return &res, nil
}

// evaluate unlocks newly satisfied achievements and credits their rewards to
// next.
func (s *Service) evaluate(ctx context.Context, st *storage.Store, next *progression.State, now time.Time) ([]progression.Achievement, error) {
	if len(s.achievements) == 0 {
		return nil, nil
	}
	unlocked, err := st.Achievements.UnlockedSet(ctx, s.playerID)
	if err != nil {
		return nil, err
	}
	hist, err := st.History(ctx, s.playerID)
	if err != nil {
		return nil, err
	}

	newly := progression.Evaluate(s.achievements, next.Profile, next.Skills, hist, unlocked)
	var out []progression.Achievement
	for i, u := range progression.Unlock(newly, now) {
		added, err := st.Achievements.Insert(ctx, s.playerID, u)
		if err != nil {
			return nil, err
		}
		if !added {
			continue
		}
		next.Profile.Currency += newly[i].Reward
		out = append(out, newly[i])
		s.log.Info("achievement unlocked", zap.String("achievement", u.AchievementID), zap.Int("reward", newly[i].Reward))
	}
	return out, nil
}

func normalizeTitle(title string) (string, error) {
	t := strings.TrimSpace(title)
	if t == "" {
		return "", ErrTitleRequired
	}
	return t, nil
}

// Status is a read of the player's current progression.
type Status struct {
	Result
	XPToNext   int
	Multiplier float64
	Missions   []storage.Mission
	Goals      []storage.Goal
	Unlocks    []progression.AchievementUnlock
}

// Status refreshes the snapshot (expired effects, streak break) and returns it
// with the active missions and goals.
func (s *Service) Status(ctx context.Context) (*Status, error) {
	var out Status
	res, err := s.run(ctx, "status", func(ctx context.Context, t *txn) (step, error) {
		missions, err := t.store.Missions.List(ctx, s.playerID, storage.StatusActive)
		if err != nil {
			return step{}, err
		}
		goals, err := t.store.Goals.ListActive(ctx, s.playerID)
		if err != nil {
			return step{}, err
		}
		out.Missions = missions
		out.Goals = goals
		out.Multiplier = progression.XPMultiplier(t.state.Profile.Effects, t.now)
		return step{State: t.state}, nil
	})
	if err != nil {
		return nil, err
	}
	unlocks, err := storage.NewAchievementRepo(s.db).List(ctx, s.playerID)
	if err != nil {
		return nil, err
	}
	out.Result = *res
	out.Unlocks = unlocks
	out.XPToNext = progression.XPToNextLevel(res.State.Profile.Level)
	return &out, nil
}

// Ledger returns the most recent effect ledger entries, newest first.
func (s *Service) Ledger(ctx context.Context, limit int) ([]progression.LedgerEntry, error) {
	return storage.NewLedgerRepo(s.db).Recent(ctx, s.playerID, limit)
}
