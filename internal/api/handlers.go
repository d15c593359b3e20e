package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"liferpg/internal/engine"
	"liferpg/internal/progression"
)

type Handler struct {
	svc *engine.Service
}

func NewHandler(svc *engine.Service) *Handler {
	return &Handler{svc: svc}
}

func pathInt(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	return id, err == nil && id > 0
}

func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Status(r.Context())
	if err != nil {
		failErr(w, err)
		return
	}
	success(w, map[string]any{
		"profile":      toProfile(st.State),
		"xp_to_next":   st.XPToNext,
		"multiplier":   st.Multiplier,
		"missions":     toMissions(st.Missions),
		"goals_open":   len(st.Goals),
		"achievements": len(st.Unlocks),
	})
}

func (h *Handler) Shop(w http.ResponseWriter, r *http.Request) {
	items := h.svc.Shop()
	out := make([]shopItemView, 0, len(items))
	for _, it := range items {
		out = append(out, toShopItem(it))
	}
	success(w, out)
}

func (h *Handler) Buy(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Buy(r.Context(), mux.Vars(r)["item"])
	if err != nil {
		failErr(w, err)
		return
	}
	success(w, toResult(*res))
}

type useRequest struct {
	SkillID   string `json:"skill_id"`
	MissionID int64  `json:"mission_id"`
}

func (h *Handler) Use(w http.ResponseWriter, r *http.Request) {
	var req useRequest
	if err := decodeJSON(r, &req); err != nil {
		fail(w, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}
	res, err := h.svc.Use(r.Context(), mux.Vars(r)["item"], progression.Target{SkillID: req.SkillID, MissionID: req.MissionID})
	if err != nil {
		failErr(w, err)
		return
	}
	out := map[string]any{"result": toResult(res.Result)}
	if res.Token != nil {
		out["reroll_token"] = res.Token.ID
	}
	success(w, out)
}

func (h *Handler) ListMissions(w http.ResponseWriter, r *http.Request) {
	ms, err := h.svc.ListMissions(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		failErr(w, err)
		return
	}
	success(w, toMissions(ms))
}

type missionRequest struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Rank     string `json:"rank"`
	SkillID  string `json:"skill_id"`
	XP       int    `json:"xp"`
	Every    string `json:"every"`
}

func (h *Handler) AddMission(w http.ResponseWriter, r *http.Request) {
	var req missionRequest
	if err := decodeJSON(r, &req); err != nil {
		fail(w, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}
	rank, err := engine.ParseRank(req.Rank)
	if err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}
	every, err := engine.ParseRecurrence(req.Every)
	if err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}
	m, err := h.svc.AddMission(r.Context(), engine.AddMissionInput{
		Title: req.Title, Category: req.Category, Rank: rank, SkillID: req.SkillID, XPReward: req.XP,
		Recurrence: every,
	})
	if err != nil {
		failErr(w, err)
		return
	}
	created(w, toMission(*m))
}

func (h *Handler) CompleteMission(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "id")
	if !ok {
		fail(w, http.StatusBadRequest, "invalid mission id")
		return
	}
	res, err := h.svc.CompleteMission(r.Context(), id)
	if err != nil {
		failErr(w, err)
		return
	}
	success(w, map[string]any{
		"result":     toResult(res.Result),
		"xp_awarded": res.XPAwarded,
		"multiplier": res.Multiplier,
		"coins":      res.CoinsEarned,
		"level_up":   res.LevelUp,
		"next_due":   res.NextDueAt,
	})
}

type rerollRequest struct {
	Title    string `json:"title"`
	Category string `json:"category"`
}

func (h *Handler) Reroll(w http.ResponseWriter, r *http.Request) {
	var req rerollRequest
	if err := decodeJSON(r, &req); err != nil {
		fail(w, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}
	m, err := h.svc.RedeemReroll(r.Context(), mux.Vars(r)["token"], req.Title, req.Category)
	if err != nil {
		failErr(w, err)
		return
	}
	success(w, toMission(*m))
}

func (h *Handler) ListGoals(w http.ResponseWriter, r *http.Request) {
	gs, err := h.svc.ListGoals(r.Context())
	if err != nil {
		failErr(w, err)
		return
	}
	out := make([]goalView, 0, len(gs))
	for _, g := range gs {
		out = append(out, toGoal(g))
	}
	success(w, out)
}

type goalRequest struct {
	Title    string `json:"title"`
	Category string `json:"category"`
}

func (h *Handler) AddGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := decodeJSON(r, &req); err != nil {
		fail(w, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}
	g, err := h.svc.AddGoal(r.Context(), req.Title, req.Category)
	if err != nil {
		failErr(w, err)
		return
	}
	created(w, toGoal(*g))
}

func (h *Handler) CompleteGoal(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "id")
	if !ok {
		fail(w, http.StatusBadRequest, "invalid goal id")
		return
	}
	res, err := h.svc.CompleteGoal(r.Context(), id)
	if err != nil {
		failErr(w, err)
		return
	}
	success(w, toResult(*res))
}

func (h *Handler) ListSkills(w http.ResponseWriter, r *http.Request) {
	skills, err := h.svc.ListSkills(r.Context())
	if err != nil {
		failErr(w, err)
		return
	}
	success(w, toProfile(progression.State{Skills: skills}).Skills)
}

type skillRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

func (h *Handler) AddSkill(w http.ResponseWriter, r *http.Request) {
	var req skillRequest
	if err := decodeJSON(r, &req); err != nil {
		fail(w, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}
	sk, err := h.svc.AddSkill(r.Context(), req.Name, req.Category)
	if err != nil {
		failErr(w, err)
		return
	}
	created(w, skillView{ID: sk.ID, Name: sk.Name, Category: sk.Category, XP: sk.XP, Level: sk.Level})
}

func (h *Handler) DeleteSkill(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteSkill(r.Context(), mux.Vars(r)["id"]); err != nil {
		failErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Message: "skill deleted"})
}

func (h *Handler) Achievements(w http.ResponseWriter, r *http.Request) {
	views, err := h.svc.Achievements(r.Context())
	if err != nil {
		failErr(w, err)
		return
	}
	success(w, toAchievements(views))
}

func (h *Handler) EvaluateAchievements(w http.ResponseWriter, r *http.Request) {
	newly, err := h.svc.EvaluateAchievements(r.Context())
	if err != nil {
		failErr(w, err)
		return
	}
	ids := make([]string, 0, len(newly))
	for _, a := range newly {
		ids = append(ids, a.ID)
	}
	success(w, ids)
}

type dungeonRequest struct {
	SkillID string `json:"skill_id"`
	Success bool   `json:"success"`
}

func (h *Handler) Dungeon(w http.ResponseWriter, r *http.Request) {
	var req dungeonRequest
	if err := decodeJSON(r, &req); err != nil {
		fail(w, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}

	var (
		res *engine.DungeonResult
		err error
	)
	ctx := r.Context()
	switch mux.Vars(r)["action"] {
	case "offer":
		res, err = h.svc.OfferDungeon(ctx, req.SkillID)
	case "accept":
		res, err = h.svc.AcceptDungeon(ctx)
	case "decline":
		res, err = h.svc.DeclineDungeon(ctx)
	case "resolve":
		res, err = h.svc.ResolveDungeon(ctx, req.Success)
	default:
		fail(w, http.StatusNotFound, "unknown dungeon action")
		return
	}
	if err != nil {
		failErr(w, err)
		return
	}
	success(w, map[string]any{"event": toDungeon(res.Event), "result": toResult(res.Result)})
}

func (h *Handler) CheckStreak(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.CheckStreak(r.Context())
	if err != nil {
		failErr(w, err)
		return
	}
	success(w, map[string]any{
		"broken":   res.Streak.Broken,
		"restored": res.Streak.Restored,
		"result":   toResult(*res),
	})
}

func (h *Handler) Ledger(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	entries, err := h.svc.Ledger(r.Context(), limit)
	if err != nil {
		failErr(w, err)
		return
	}
	success(w, toLedger(entries))
}
