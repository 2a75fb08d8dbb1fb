package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title    lipgloss.Style
	path     lipgloss.Style
	dirty    lipgloss.Style
	clean    lipgloss.Style
	enabled  lipgloss.Style
	disabled lipgloss.Style
	selected lipgloss.Style
	index    lipgloss.Style
	banner   lipgloss.Style
	status   lipgloss.Style
	errText  lipgloss.Style
	history  lipgloss.Style
	faint    lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		path:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		dirty:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		clean:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		enabled:  lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
		disabled: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		selected: lipgloss.NewStyle().Background(lipgloss.Color("63")).Foreground(lipgloss.Color("0")),
		index:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		banner:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("214")).Padding(0, 1),
		status:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		errText:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		history:  lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		faint:    lipgloss.NewStyle().Faint(true),
	}
}
