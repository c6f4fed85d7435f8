package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.AdaptiveColor{Light: "4", Dark: "12"}
	dim    = lipgloss.AdaptiveColor{Light: "240", Dark: "245"}
	danger = lipgloss.AdaptiveColor{Light: "1", Dark: "9"}
	ok     = lipgloss.AdaptiveColor{Light: "2", Dark: "10"}

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(accent).MarginBottom(1)
	labelStyle   = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(dim)
	errorStyle   = lipgloss.NewStyle().Foreground(danger)
	successStyle = lipgloss.NewStyle().Foreground(ok)

	bannerStyle = lipgloss.NewStyle().
			Foreground(danger).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(danger).
			Padding(0, 1)
)

// FocusedBorder returns a pane style with an accent-colored rounded border.
func FocusedBorder() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(0, 1)
}

// UnfocusedBorder returns a pane style with a dim rounded border.
func UnfocusedBorder() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(dim).
		Padding(0, 1)
}

// PaneWidths splits the terminal width one third form, two thirds list.
func PaneWidths(totalWidth int) (form, list int) {
	const minForm = 36
	if totalWidth <= 0 {
		return 0, 0
	}
	form = totalWidth / 3
	if form < minForm {
		form = minForm
	}
	list = totalWidth - form
	if list < 0 {
		list = 0
	}
	return form, list
}
