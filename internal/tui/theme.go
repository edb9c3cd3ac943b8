package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	TextPrimary lipgloss.AdaptiveColor
	TextMuted   lipgloss.AdaptiveColor
	Accent      lipgloss.AdaptiveColor
	Success     lipgloss.AdaptiveColor
	Warn        lipgloss.AdaptiveColor
	Border      lipgloss.AdaptiveColor

	TopBar      lipgloss.Style
	TopBarTitle lipgloss.Style
	Tab         lipgloss.Style
	TabActive   lipgloss.Style
	Pane        lipgloss.Style
	PaneTitle   lipgloss.Style
	Footer      lipgloss.Style
	InputBox    lipgloss.Style
	Spinner     lipgloss.Style

	RoleYou lipgloss.Style
	RoleAI  lipgloss.Style
	RoleSys lipgloss.Style
}

func NewTheme() Theme {
	if os.Getenv("COMPASS_NO_COLOR") == "1" {
		return newNoColorTheme()
	}

	t := Theme{
		TextPrimary: lipgloss.AdaptiveColor{Light: "#1a1a1a", Dark: "#e6e6e6"},
		TextMuted:   lipgloss.AdaptiveColor{Light: "#6b6b6b", Dark: "#8a8a8a"},
		Accent:      lipgloss.AdaptiveColor{Light: "#0f6b8c", Dark: "#4fc3dd"},
		Success:     lipgloss.AdaptiveColor{Light: "#1d7a3a", Dark: "#58c477"},
		Warn:        lipgloss.AdaptiveColor{Light: "#9a6400", Dark: "#e0b050"},
		Border:      lipgloss.AdaptiveColor{Light: "#d0d0d0", Dark: "#3a3a3a"},
	}

	t.TopBar = lipgloss.NewStyle().Padding(0, 1)
	t.TopBarTitle = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	t.Tab = lipgloss.NewStyle().Padding(0, 2).Foreground(t.TextMuted)
	t.TabActive = lipgloss.NewStyle().Padding(0, 2).Bold(true).
		Foreground(t.Accent).Underline(true)
	t.Pane = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).BorderForeground(t.Border).Padding(0, 1)
	t.PaneTitle = lipgloss.NewStyle().Bold(true).Foreground(t.TextPrimary)
	t.Footer = lipgloss.NewStyle().Foreground(t.TextMuted).Padding(0, 1)
	t.InputBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).BorderForeground(t.Accent).Padding(0, 1)
	t.Spinner = lipgloss.NewStyle().Foreground(t.Accent)

	t.RoleYou = lipgloss.NewStyle().Bold(true).Foreground(t.Success)
	t.RoleAI = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	t.RoleSys = lipgloss.NewStyle().Foreground(t.TextMuted).Italic(true)
	return t
}

func newNoColorTheme() Theme {
	plain := lipgloss.NewStyle()
	return Theme{
		TopBar:      plain,
		TopBarTitle: plain.Bold(true),
		Tab:         plain.Padding(0, 2),
		TabActive:   plain.Padding(0, 2).Bold(true).Underline(true),
		Pane:        plain.Border(lipgloss.NormalBorder()).Padding(0, 1),
		PaneTitle:   plain.Bold(true),
		Footer:      plain.Padding(0, 1),
		InputBox:    plain.Border(lipgloss.NormalBorder()).Padding(0, 1),
		Spinner:     plain,
		RoleYou:     plain.Bold(true),
		RoleAI:      plain.Bold(true),
		RoleSys:     plain.Italic(true),
	}
}
