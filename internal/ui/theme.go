package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"liferpg/internal/progression"
)

// Hunter theme (CLI + TUI).

const (
	IconMission = "⚔️"
	IconSparkle = "✨"
	IconPlus    = "➕"
	IconDone    = "✅"
	IconTrophy  = "🏆"
	IconBolt    = "⚡"
	IconInfo    = "ℹ️"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconCoin    = "🪙"
	IconFire    = "🔥"
	IconShield  = "🛡️"
	IconBook    = "📖"
	IconScroll  = "📜"
	IconGate    = "🌀"
	IconGoal    = "🏁"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	PanelTitle  = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)

	BadgeLevelUp = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("LEVEL UP")
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

func StatusText(status string) string {
	s := strings.ToLower(strings.TrimSpace(status))
	switch s {
	case "done", "resolved", "applied", "extended", "replaced", "consumed":
		return Good.Render(s)
	case "active", "accepted", "banked":
		return H2.Render(s)
	case "offered":
		return Warn.Render(s)
	case "rejected", "failed":
		return Bad.Render(s)
	default:
		return Muted.Render(status)
	}
}

// EffectIcon returns the icon shown next to items and effects of kind k.
func EffectIcon(k progression.EffectKind) string {
	switch k {
	case progression.KindXPBoost:
		return IconBolt
	case progression.KindStreakRecovery:
		return IconShield
	case progression.KindSkillXPBoost:
		return IconBook
	case progression.KindMissionReroll:
		return IconScroll
	default:
		return IconSparkle
	}
}

// RankText colours a mission rank.
func RankText(rank string) string {
	switch rank {
	case "S", "A":
		return Gold.Render(rank)
	case "B", "C":
		return H2.Render(rank)
	default:
		return Muted.Render(rank)
	}
}

// ProgressBar renders value/total as a fixed width bar.
func ProgressBar(value int, total int, width int) string {
	if total <= 0 {
		total = 1
	}
	if width <= 3 {
		width = 3
	}
	if value < 0 {
		value = 0
	}
	if value > total {
		value = total
	}
	filled := int(float64(value) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}
