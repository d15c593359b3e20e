package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"liferpg/internal/engine"
	"liferpg/internal/progression"
)

type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func success(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: data})
}

func created(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusCreated, APIResponse{Success: true, Data: data})
}

func fail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, APIResponse{Success: false, Error: msg})
}

// failErr writes err with the status its type maps to.
func failErr(w http.ResponseWriter, err error) {
	fail(w, statusFor(err), err.Error())
}

func decodeJSON(r *http.Request, dest any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dest); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func statusFor(err error) int {
	var (
		notFound     engine.NotFoundError
		skillMissing progression.SkillNotFoundError
		unknownItem  progression.UnknownItemError
		conflict     progression.ConflictingEventError
		active       progression.EffectActiveError
		done         engine.AlreadyDoneError
		dup          engine.DuplicateSkillError
		funds        progression.InsufficientFundsError
		notOwned     progression.ItemNotOwnedError
		transition   progression.InvalidTransitionError
		dangling     progression.DanglingReferenceError
		invalid      progression.InvalidEffectError
		rank         engine.InvalidRankError
		notDue       engine.NotDueError
	)
	switch {
	case errors.As(err, &notFound), errors.As(err, &skillMissing), errors.As(err, &unknownItem):
		return http.StatusNotFound
	case errors.As(err, &conflict), errors.As(err, &active), errors.As(err, &done), errors.As(err, &dup),
		errors.As(err, &notDue),
		errors.Is(err, engine.ErrTokenRedeemed), errors.Is(err, progression.ErrAlreadyUnlocked):
		return http.StatusConflict
	case errors.As(err, &funds), errors.As(err, &notOwned), errors.As(err, &transition),
		errors.As(err, &dangling), errors.As(err, &invalid), errors.As(err, &rank),
		errors.Is(err, progression.ErrNoActiveEvent), errors.Is(err, progression.ErrNoActiveMission),
		errors.Is(err, engine.ErrTitleRequired):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
