package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"liferpg/internal/engine"
)

func NewRouter(svc *engine.Service, log *zap.Logger) http.Handler {
	h := NewHandler(svc)
	r := mux.NewRouter()
	r.Use(loggerMiddleware(log))

	// Profile
	r.HandleFunc("/status", h.Status).Methods(http.MethodGet)
	r.HandleFunc("/ledger", h.Ledger).Methods(http.MethodGet)
	r.HandleFunc("/streak/check", h.CheckStreak).Methods(http.MethodPost)

	// Shop & inventory
	r.HandleFunc("/shop", h.Shop).Methods(http.MethodGet)
	r.HandleFunc("/shop/{item}/buy", h.Buy).Methods(http.MethodPost)
	r.HandleFunc("/inventory/{item}/use", h.Use).Methods(http.MethodPost)

	// Missions
	r.HandleFunc("/missions", h.ListMissions).Methods(http.MethodGet)
	r.HandleFunc("/missions", h.AddMission).Methods(http.MethodPost)
	r.HandleFunc("/missions/{id:[0-9]+}/complete", h.CompleteMission).Methods(http.MethodPost)
	r.HandleFunc("/rerolls/{token}", h.Reroll).Methods(http.MethodPost)

	// Goals
	r.HandleFunc("/goals", h.ListGoals).Methods(http.MethodGet)
	r.HandleFunc("/goals", h.AddGoal).Methods(http.MethodPost)
	r.HandleFunc("/goals/{id:[0-9]+}/complete", h.CompleteGoal).Methods(http.MethodPost)

	// Skills
	r.HandleFunc("/skills", h.ListSkills).Methods(http.MethodGet)
	r.HandleFunc("/skills", h.AddSkill).Methods(http.MethodPost)
	r.HandleFunc("/skills/{id}", h.DeleteSkill).Methods(http.MethodDelete)

	// Achievements
	r.HandleFunc("/achievements", h.Achievements).Methods(http.MethodGet)
	r.HandleFunc("/achievements/evaluate", h.EvaluateAchievements).Methods(http.MethodPost)

	// Dungeon events
	r.HandleFunc("/dungeon/{action:offer|accept|decline|resolve}", h.Dungeon).Methods(http.MethodPost)

	return r
}
