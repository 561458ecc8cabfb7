package fullscreen

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title    lipgloss.Style
	step     lipgloss.Style
	dim      lipgloss.Style
	label    lipgloss.Style
	focused  lipgloss.Style
	errText  lipgloss.Style
	success  lipgloss.Style
	progress lipgloss.Style
	help     lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		step:     lipgloss.NewStyle().Bold(true),
		dim:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		label:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		focused:  lipgloss.NewStyle().Foreground(lipgloss.Color("205")),
		errText:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		success:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		progress: lipgloss.NewStyle().Foreground(lipgloss.Color("63")),
		help:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}
