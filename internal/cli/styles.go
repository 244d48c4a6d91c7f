package cli

import "github.com/charmbracelet/lipgloss"

type styles struct {
	ok    lipgloss.Style
	warn  lipgloss.Style
	label lipgloss.Style
}

func newStyles(colors bool) styles {
	if !colors {
		return styles{ok: lipgloss.NewStyle(), warn: lipgloss.NewStyle(), label: lipgloss.NewStyle()}
	}
	return styles{
		ok:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#2E7D32", Dark: "#81C784"}),
		warn:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#B26A00", Dark: "#FFB74D"}),
		label: lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#616161", Dark: "#9E9E9E"}),
	}
}
