package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liferpg/internal/catalog"
	"liferpg/internal/engine"
	"liferpg/internal/progression"
	"liferpg/internal/storage"
)

func testModel(t *testing.T) boardModel {
	t.Helper()
	shop, err := catalog.DefaultShop()
	require.NoError(t, err)
	svc := engine.NewService(nil, engine.Options{Shop: shop})
	return newBoardModel(context.Background(), svc)
}

func testStatus() *engine.Status {
	skill := "running"
	return &engine.Status{
		Result: engine.Result{State: progression.State{
			Profile:   progression.Profile{Name: "Jin", Level: 3, CurrentXP: 40, Currency: 120, Streak: 4},
			Skills:    []progression.Skill{{ID: "guitar", Name: "Guitar", Level: 1}, {ID: "running", Name: "Running", Level: 2, XP: 150}},
			Inventory: map[string]int{"xp_potion": 1, "reroll_scroll": 2, "retired_item": 1},
		}},
		XPToNext:   520,
		Multiplier: 1,
		Missions: []storage.Mission{
			{ID: 1, Title: "Run 5k", Category: "body", SkillID: &skill, XPReward: 50},
			{ID: 2, Title: "Read", Category: "mind", XPReward: 10},
		},
	}
}

func update(m boardModel, msg tea.Msg) boardModel {
	next, _ := m.Update(msg)
	return next.(boardModel)
}

func TestBoardNavigation(t *testing.T) {
	m := update(testModel(t), loadedMsg{status: testStatus()})
	assert.False(t, m.loading)

	m = update(m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.selected[paneMissions])
	m = update(m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.selected[paneMissions], "clamped at last mission")

	m = update(m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, paneInventory, m.focus)
	m = update(m, tea.KeyMsg{Type: tea.KeyDown})
	m = update(m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, m.selected[paneInventory])

	items := m.inventory()
	require.Len(t, items, 3)
	assert.Equal(t, "xp_potion", items[0].id)
	assert.Equal(t, "reroll_scroll", items[1].id)
	assert.Equal(t, "retired_item", items[2].id)
}

func TestBoardTargetFollowsSelectedMission(t *testing.T) {
	m := update(testModel(t), loadedMsg{status: testStatus()})
	assert.Equal(t, progression.Target{MissionID: 1, SkillID: "running"}, m.target())

	m = update(m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, progression.Target{MissionID: 2, SkillID: "guitar"}, m.target())
}

func TestBoardView(t *testing.T) {
	m := update(testModel(t), loadedMsg{status: testStatus()})
	view := m.View()
	assert.Contains(t, view, "Level 3")
	assert.Contains(t, view, "Run 5k")
	assert.Contains(t, view, "Guitar")

	m = update(m, loadedMsg{err: errors.New("boom")})
	assert.True(t, strings.HasPrefix(m.View(), "Error: boom"))
}
