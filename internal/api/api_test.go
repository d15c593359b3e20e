package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"liferpg/internal/catalog"
	"liferpg/internal/engine"
	"liferpg/internal/progression"
	"liferpg/internal/storage"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	db, err := storage.Open(context.Background(), filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	shop, err := catalog.DefaultShop()
	require.NoError(t, err)
	achievements, err := catalog.DefaultAchievements()
	require.NoError(t, err)

	svc := engine.NewService(db, engine.Options{
		PlayerID:     "p1",
		Shop:         shop,
		Achievements: achievements,
		Clock:        progression.FixedClock{T: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)},
	})
	return NewRouter(svc, zap.NewNop())
}

func do(t *testing.T, h http.Handler, method, path, body string) (int, APIResponse) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return rec.Code, resp
}

func TestShopListsCatalog(t *testing.T) {
	h := newTestRouter(t)
	code, resp := do(t, h, http.MethodGet, "/shop", "")
	require.Equal(t, http.StatusOK, code)

	items, ok := resp.Data.([]any)
	require.True(t, ok)
	assert.Len(t, items, 5)
	first := items[0].(map[string]any)
	assert.Equal(t, "xp_potion", first["id"])
	assert.Equal(t, "xp_boost", first["kind"])
	assert.EqualValues(t, 24, first["duration_hours"])
}

func TestMissionFlow(t *testing.T) {
	h := newTestRouter(t)

	code, resp := do(t, h, http.MethodPost, "/missions", `{"title":"Run 5k","rank":"C","category":"body"}`)
	require.Equal(t, http.StatusCreated, code, resp.Error)
	mission := resp.Data.(map[string]any)
	assert.EqualValues(t, 50, mission["xp_reward"])

	code, resp = do(t, h, http.MethodPost, "/missions/1/complete", "")
	require.Equal(t, http.StatusOK, code, resp.Error)
	data := resp.Data.(map[string]any)
	assert.EqualValues(t, 50, data["xp_awarded"])
	result := data["result"].(map[string]any)
	assert.Contains(t, result["unlocked"], "first_mission")

	code, resp = do(t, h, http.MethodPost, "/missions/1/complete", "")
	assert.Equal(t, http.StatusConflict, code)
	assert.False(t, resp.Success)

	code, _ = do(t, h, http.MethodPost, "/missions/99/complete", "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestUseWithoutItemIsUnprocessable(t *testing.T) {
	h := newTestRouter(t)

	code, resp := do(t, h, http.MethodPost, "/inventory/xp_potion/use", "")
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Contains(t, resp.Error, "xp_potion")

	code, resp = do(t, h, http.MethodGet, "/ledger", "")
	require.Equal(t, http.StatusOK, code)
	entries := resp.Data.([]any)
	require.Len(t, entries, 1)
	assert.Equal(t, "failed", entries[0].(map[string]any)["outcome"])

	code, _ = do(t, h, http.MethodPost, "/shop/xp_potion/buy", "")
	assert.Equal(t, http.StatusUnprocessableEntity, code, "no currency yet")

	code, _ = do(t, h, http.MethodPost, "/shop/nope/buy", "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestDungeonEndpoints(t *testing.T) {
	h := newTestRouter(t)

	code, _ := do(t, h, http.MethodPost, "/skills", `{"name":"Guitar","category":"art"}`)
	require.Equal(t, http.StatusCreated, code)

	code, resp := do(t, h, http.MethodPost, "/dungeon/offer", `{"skill_id":"guitar"}`)
	require.Equal(t, http.StatusOK, code, resp.Error)
	event := resp.Data.(map[string]any)["event"].(map[string]any)
	assert.Equal(t, "offered", event["state"])

	code, _ = do(t, h, http.MethodPost, "/dungeon/resolve", `{"success":true}`)
	assert.Equal(t, http.StatusUnprocessableEntity, code, "resolve before accept")

	code, _ = do(t, h, http.MethodPost, "/dungeon/decline", "")
	require.Equal(t, http.StatusOK, code)

	code, _ = do(t, h, http.MethodPost, "/dungeon/accept", "")
	assert.Equal(t, http.StatusUnprocessableEntity, code)

	code, _ = do(t, h, http.MethodPost, "/dungeon/offer", `{"skill_id":"guitar","bogus":1}`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, statusFor(progression.SkillNotFoundError{SkillID: "x"}))
	assert.Equal(t, http.StatusConflict, statusFor(progression.EffectActiveError{Kind: progression.KindXPBoost}))
	assert.Equal(t, http.StatusConflict, statusFor(engine.ErrTokenRedeemed))
	assert.Equal(t, http.StatusConflict, statusFor(engine.NotDueError{ID: 1}))
	assert.Equal(t, http.StatusUnprocessableEntity, statusFor(progression.DanglingReferenceError{SkillID: "x"}))
	assert.Equal(t, http.StatusInternalServerError, statusFor(context.DeadlineExceeded))
}
