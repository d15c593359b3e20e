package api

import (
	"time"

	"liferpg/internal/engine"
	"liferpg/internal/progression"
	"liferpg/internal/storage"
)

type effectView struct {
	ID          string     `json:"id"`
	ItemID      string     `json:"item_id"`
	Kind        string     `json:"kind"`
	Multiplier  float64    `json:"multiplier"`
	ActivatedAt time.Time  `json:"activated_at"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}

type dungeonView struct {
	SkillID    string     `json:"skill_id"`
	State      string     `json:"state"`
	OfferedAt  time.Time  `json:"offered_at"`
	AcceptedAt *time.Time `json:"accepted_at,omitempty"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
	Success    bool       `json:"success"`
}

type skillView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	XP       int    `json:"xp"`
	Level    int    `json:"level"`
}

type profileView struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Level         int            `json:"level"`
	CurrentXP     int            `json:"current_xp"`
	Currency      int            `json:"currency"`
	Streak        int            `json:"streak"`
	LastActiveDay *time.Time     `json:"last_active_day,omitempty"`
	Effects       []effectView   `json:"effects"`
	Dungeon       *dungeonView   `json:"dungeon,omitempty"`
	Skills        []skillView    `json:"skills"`
	Inventory     map[string]int `json:"inventory"`
}

type achievementView struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Reward      int        `json:"reward"`
	Criteria    string     `json:"criteria"`
	Value       int        `json:"value"`
	Category    string     `json:"category,omitempty"`
	Earned      bool       `json:"earned"`
	UnlockedAt  *time.Time `json:"unlocked_at,omitempty"`
}

type ledgerView struct {
	ID      string    `json:"id"`
	At      time.Time `json:"at"`
	ItemID  string    `json:"item_id"`
	Kind    string    `json:"kind"`
	Outcome string    `json:"outcome"`
	Error   string    `json:"error,omitempty"`
	Detail  string    `json:"detail,omitempty"`
}

type missionView struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Category    string     `json:"category"`
	SkillID     *string    `json:"skill_id,omitempty"`
	XPReward    int        `json:"xp_reward"`
	CoinReward  int        `json:"coin_reward"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	XPAwarded   int        `json:"xp_awarded,omitempty"`
	Recurrence  string     `json:"recurrence,omitempty"`
	NextDueAt   *time.Time `json:"next_due_at,omitempty"`
}

type goalView struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Category    string     `json:"category"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

type shopItemView struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Price         int     `json:"price"`
	Kind          string  `json:"kind"`
	Multiplier    float64 `json:"multiplier,omitempty"`
	DurationHours float64 `json:"duration_hours,omitempty"`
	Amount        int     `json:"amount,omitempty"`
}

// resultView is what state-changing endpoints return.
type resultView struct {
	Profile  profileView  `json:"profile"`
	Ledger   []ledgerView `json:"ledger,omitempty"`
	Unlocked []string     `json:"unlocked,omitempty"`
}

func toProfile(st progression.State) profileView {
	p := st.Profile
	out := profileView{
		ID:            p.ID,
		Name:          p.Name,
		Level:         p.Level,
		CurrentXP:     p.CurrentXP,
		Currency:      p.Currency,
		Streak:        p.Streak,
		LastActiveDay: p.LastActiveDay,
		Effects:       make([]effectView, 0, len(p.Effects)),
		Skills:        make([]skillView, 0, len(st.Skills)),
		Inventory:     st.Inventory,
	}
	for _, e := range p.Effects {
		out.Effects = append(out.Effects, effectView{
			ID: e.ID, ItemID: e.ItemID, Kind: string(e.Kind), Multiplier: e.Multiplier,
			ActivatedAt: e.ActivatedAt, ExpiresAt: e.ExpiresAt,
		})
	}
	if p.Dungeon != nil {
		d := toDungeon(*p.Dungeon)
		out.Dungeon = &d
	}
	for _, s := range st.Skills {
		out.Skills = append(out.Skills, skillView{ID: s.ID, Name: s.Name, Category: s.Category, XP: s.XP, Level: s.Level})
	}
	if out.Inventory == nil {
		out.Inventory = map[string]int{}
	}
	return out
}

func toDungeon(ev progression.DungeonEvent) dungeonView {
	return dungeonView{
		SkillID: ev.SkillID, State: string(ev.State), OfferedAt: ev.OfferedAt,
		AcceptedAt: ev.AcceptedAt, ResolvedAt: ev.ResolvedAt, Success: ev.Success,
	}
}

func toLedger(entries []progression.LedgerEntry) []ledgerView {
	out := make([]ledgerView, 0, len(entries))
	for _, e := range entries {
		out = append(out, ledgerView{
			ID: e.ID, At: e.At, ItemID: e.ItemID, Kind: string(e.Kind),
			Outcome: string(e.Outcome), Error: e.Error, Detail: e.Detail,
		})
	}
	return out
}

func toResult(res engine.Result) resultView {
	out := resultView{Profile: toProfile(res.State), Ledger: toLedger(res.Entries)}
	for _, a := range res.Unlocked {
		out.Unlocked = append(out.Unlocked, a.ID)
	}
	return out
}

func toMission(m storage.Mission) missionView {
	return missionView{
		ID: m.ID, Title: m.Title, Category: m.Category, SkillID: m.SkillID,
		XPReward: m.XPReward, CoinReward: m.CoinReward, Status: m.Status,
		CreatedAt: m.CreatedAt, CompletedAt: m.CompletedAt, XPAwarded: m.XPAwarded,
		Recurrence: m.Recurrence, NextDueAt: m.NextDueAt,
	}
}

func toMissions(ms []storage.Mission) []missionView {
	out := make([]missionView, 0, len(ms))
	for _, m := range ms {
		out = append(out, toMission(m))
	}
	return out
}

func toGoal(g storage.Goal) goalView {
	return goalView{
		ID: g.ID, Title: g.Title, Category: g.Category, Status: g.Status,
		CreatedAt: g.CreatedAt, CompletedAt: g.CompletedAt,
	}
}

func toShopItem(it progression.ShopItem) shopItemView {
	v := shopItemView{ID: it.ID, Name: it.Name, Description: it.Description, Price: it.Price}
	if it.Effect == nil {
		return v
	}
	v.Kind = string(it.Effect.Kind())
	switch e := it.Effect.(type) {
	case progression.XPBoost:
		v.Multiplier = e.Multiplier
		v.DurationHours = e.Duration.Hours()
	case progression.SkillXPBoost:
		v.Amount = e.Amount
	}
	return v
}

func toAchievements(views []engine.AchievementView) []achievementView {
	out := make([]achievementView, 0, len(views))
	for _, v := range views {
		out = append(out, achievementView{
			ID: v.ID, Name: v.Name, Description: v.Description, Reward: v.Reward,
			Criteria: string(v.Criteria.Type), Value: v.Criteria.Value, Category: v.Criteria.Category,
			Earned: v.Earned, UnlockedAt: v.UnlockedAt,
		})
	}
	return out
}
