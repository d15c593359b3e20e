package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"liferpg/internal/engine"
	"liferpg/internal/progression"
	"liferpg/internal/ui"
)

type pane int

const (
	paneMissions pane = iota
	paneInventory
)

type boardModel struct {
	ctx context.Context
	svc *engine.Service

	keys    keyMap
	help    help.Model
	spinner spinner.Model

	width  int
	height int

	status *engine.Status
	focus  pane
	// selected cursor per pane
	selected [2]int

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	status *engine.Status
	err    error
}

type completedMsg struct {
	res *engine.CompleteResult
	err error
}

type usedMsg struct {
	itemID string
	res    *engine.UseResult
	err    error
}

func newBoardModel(ctx context.Context, svc *engine.Service) boardModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		keys:    defaultKeys(),
		help:    help.New(),
		spinner: sp,
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.spinner.Tick)
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		st, err := m.svc.Status(m.ctx)
		return loadedMsg{status: st, err: err}
	}
}

func (m boardModel) completeCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.CompleteMission(m.ctx, id)
		return completedMsg{res: res, err: err}
	}
}

func (m boardModel) useCmd(itemID string, target progression.Target) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.Use(m.ctx, itemID, target)
		return usedMsg{itemID: itemID, res: res, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.status = msg.status
		m.clampSelection()
		if s := msg.status.Streak; s.Broken {
			if s.Restored {
				m.lastLog = ui.IconShield + " Streak saved by a recovery item."
			} else {
				m.lastLog = "Streak lost."
			}
			return m, nil
		}
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case completedMsg:
		if msg.err != nil {
			m.lastLog = "Complete failed: " + msg.err.Error()
			return m, nil
		}
		log := fmt.Sprintf("Mission %d: +%d XP", msg.res.MissionID, msg.res.XPAwarded)
		if msg.res.Multiplier > 1 {
			log += fmt.Sprintf(" (x%.1f)", msg.res.Multiplier)
		}
		if msg.res.LevelUp {
			log += " " + ui.BadgeLevelUp
		}
		for _, a := range msg.res.Unlocked {
			log += " " + ui.IconTrophy + " " + a.Name
		}
		m.lastLog = log
		return m, m.loadCmd()
	case usedMsg:
		if msg.err != nil {
			m.lastLog = "Use failed: " + msg.err.Error()
			return m, m.loadCmd()
		}
		m.lastLog = fmt.Sprintf("%s %s: %s", msg.itemID, msg.res.Entry.Outcome, msg.res.Entry.Detail)
		if msg.res.Token != nil {
			m.lastLog += " token " + msg.res.Token.ID
		}
		return m, m.loadCmd()
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, tea.Batch(m.loadCmd(), m.spinner.Tick)
		case key.Matches(msg, m.keys.Tab):
			if m.focus == paneMissions {
				m.focus = paneInventory
			} else {
				m.focus = paneMissions
			}
			return m, nil
		case key.Matches(msg, m.keys.Up):
			if m.selected[m.focus] > 0 {
				m.selected[m.focus]--
			}
			return m, nil
		case key.Matches(msg, m.keys.Down):
			if m.selected[m.focus] < m.paneLen(m.focus)-1 {
				m.selected[m.focus]++
			}
			return m, nil
		case key.Matches(msg, m.keys.Complete):
			if m.focus != paneMissions || m.status == nil || len(m.status.Missions) == 0 {
				return m, nil
			}
			ms := m.status.Missions[m.selected[paneMissions]]
			m.lastLog = fmt.Sprintf("Completing %d…", ms.ID)
			return m, m.completeCmd(ms.ID)
		case key.Matches(msg, m.keys.Use):
			if m.focus != paneInventory {
				return m, nil
			}
			items := m.inventory()
			if len(items) == 0 {
				return m, nil
			}
			it := items[m.selected[paneInventory]]
			m.lastLog = fmt.Sprintf("Using %s…", it.id)
			return m, m.useCmd(it.id, m.target())
		}
	}
	return m, nil
}

// target picks effect targets from the board: the selected mission and its
// skill, falling back to the first skill.
func (m boardModel) target() progression.Target {
	var t progression.Target
	if m.status == nil {
		return t
	}
	if len(m.status.Missions) > 0 {
		ms := m.status.Missions[m.selected[paneMissions]]
		t.MissionID = ms.ID
		if ms.SkillID != nil {
			t.SkillID = *ms.SkillID
		}
	}
	if t.SkillID == "" && len(m.status.State.Skills) > 0 {
		t.SkillID = m.status.State.Skills[0].ID
	}
	return t
}

type invLine struct {
	id   string
	name string
	qty  int
	kind progression.EffectKind
}

func (m boardModel) inventory() []invLine {
	if m.status == nil {
		return nil
	}
	var out []invLine
	for _, it := range m.svc.Shop() {
		qty := m.status.State.Inventory[it.ID]
		if qty <= 0 {
			continue
		}
		l := invLine{id: it.ID, name: it.Name, qty: qty}
		if it.Effect != nil {
			l.kind = it.Effect.Kind()
		}
		out = append(out, l)
	}
	// Items no longer in the catalog are still owned.
	known := map[string]bool{}
	for _, l := range out {
		known[l.id] = true
	}
	var extra []string
	for id, qty := range m.status.State.Inventory {
		if qty > 0 && !known[id] {
			extra = append(extra, id)
		}
	}
	sort.Strings(extra)
	for _, id := range extra {
		out = append(out, invLine{id: id, name: id, qty: m.status.State.Inventory[id]})
	}
	return out
}

func (m boardModel) paneLen(p pane) int {
	if m.status == nil {
		return 0
	}
	if p == paneMissions {
		return len(m.status.Missions)
	}
	return len(m.inventory())
}

func (m *boardModel) clampSelection() {
	for _, p := range []pane{paneMissions, paneInventory} {
		n := m.paneLen(p)
		if m.selected[p] >= n {
			m.selected[p] = n - 1
		}
		if m.selected[p] < 0 {
			m.selected[p] = 0
		}
	}
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	leftW := 30
	if m.width > 0 {
		if maxLeft := m.width / 2; maxLeft < leftW {
			leftW = maxLeft
		}
		if leftW < 20 {
			leftW = 20
		}
	}

	left := lipgloss.NewStyle().Width(leftW).Render(m.renderSidebar())
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", m.renderMain())
	return m.renderHeader() + "\n\n" + body + "\n\n" + m.lastLog + "\n" + m.help.View(m.keys)
}

func (m boardModel) renderHeader() string {
	if m.status == nil {
		return ui.Title.Render("Hunter") + " " + m.spinner.View() + " loading…"
	}
	p := m.status.State.Profile
	bar := ui.ProgressBar(p.CurrentXP, m.status.XPToNext, 30)
	head := fmt.Sprintf("%s | %s | Level %d | XP %d/%d %s | %s %d | %s %d",
		ui.Title.Render("Hunter"), p.Name, p.Level, p.CurrentXP, m.status.XPToNext, bar,
		ui.IconCoin, p.Currency, ui.IconFire, p.Streak)
	if m.status.Multiplier > 1 {
		head += " | " + ui.Gold.Render(fmt.Sprintf("%s x%.1f", ui.IconBolt, m.status.Multiplier))
	}
	if m.loading {
		head += " " + m.spinner.View()
	}
	return head
}

func (m boardModel) renderSidebar() string {
	if m.status == nil {
		return "Skills\n\nLoading…"
	}
	st := m.status.State
	lines := []string{ui.PanelTitle.Render("Skills")}
	if len(st.Skills) == 0 {
		lines = append(lines, ui.Muted.Render("(none)"))
	}
	for _, s := range st.Skills {
		cur := progression.SkillXPForLevel(s.Level)
		next := progression.SkillXPForLevel(s.Level + 1)
		lines = append(lines, fmt.Sprintf("- %s L%d %s", s.Name, s.Level, ui.ProgressBar(s.XP-cur, next-cur, 10)))
	}

	lines = append(lines, "", ui.PanelTitle.Render("Effects"))
	now := time.Now().UTC()
	active := 0
	for _, e := range st.Profile.Effects {
		if !e.ActiveAt(now) {
			continue
		}
		active++
		left := e.ExpiresAt.Sub(now).Round(time.Minute)
		lines = append(lines, fmt.Sprintf("%s x%.1f (%s left)", ui.EffectIcon(e.Kind), e.Multiplier, left))
	}
	if active == 0 {
		lines = append(lines, ui.Muted.Render("(none)"))
	}

	if ev := st.Profile.Dungeon; ev != nil {
		lines = append(lines, "", ui.PanelTitle.Render(ui.IconGate+" Dungeon"))
		lines = append(lines, fmt.Sprintf("%s: %s", ev.SkillID, ui.StatusText(string(ev.State))))
	}
	return strings.Join(lines, "\n")
}

func (m boardModel) renderMain() string {
	if m.status == nil {
		return ""
	}
	var out []string

	out = append(out, m.paneTitle(paneMissions, "Missions"))
	if len(m.status.Missions) == 0 {
		out = append(out, ui.Muted.Render("(no active missions)"))
	}
	for i, ms := range m.status.Missions {
		line := fmt.Sprintf("%d %s (+%d xp, %d coins) [%s]", ms.ID, ms.Title, ms.XPReward, ms.CoinReward, ms.Category)
		out = append(out, m.row(paneMissions, i, line))
	}

	out = append(out, "", m.paneTitle(paneInventory, "Inventory"))
	items := m.inventory()
	if len(items) == 0 {
		out = append(out, ui.Muted.Render("(empty)"))
	}
	for i, it := range items {
		line := fmt.Sprintf("%s %s x%d", ui.EffectIcon(it.kind), it.name, it.qty)
		out = append(out, m.row(paneInventory, i, line))
	}
	return strings.Join(out, "\n")
}

func (m boardModel) paneTitle(p pane, title string) string {
	if m.focus == p {
		return ui.Title.Render("▸ " + title)
	}
	return ui.PanelTitle.Render("  " + title)
}

func (m boardModel) row(p pane, i int, line string) string {
	if m.focus == p && m.selected[p] == i {
		return ui.SelectedRow.Render("> " + line)
	}
	return "  " + line
}
