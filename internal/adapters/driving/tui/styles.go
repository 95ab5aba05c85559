package tui

import "github.com/charmbracelet/lipgloss"

// Styles groups the lipgloss styles used by the search view.
type Styles struct {
	Title     lipgloss.Style
	Input     lipgloss.Style
	Result    lipgloss.Style
	Selected  lipgloss.Style
	Highlight lipgloss.Style
	Score     lipgloss.Style
	Status    lipgloss.Style
	Error     lipgloss.Style
}

// DefaultStyles returns the default colour scheme.
func DefaultStyles() *Styles {
	return &Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62")),
		Input:     lipgloss.NewStyle().MarginBottom(1),
		Result:    lipgloss.NewStyle(),
		Selected:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("170")),
		Highlight: lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("214")),
		Score:     lipgloss.NewStyle().Faint(true),
		Status:    lipgloss.NewStyle().Faint(true),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
}
