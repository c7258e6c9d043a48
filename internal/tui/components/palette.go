package components

import "github.com/charmbracelet/lipgloss"

// Component palette. It mirrors the tui palette so the components package
// stays free of upward imports.
const (
	accent = lipgloss.Color("39")
	dim    = lipgloss.Color("245")
	faint  = lipgloss.Color("240")
	plain  = lipgloss.Color("252")
	alert  = lipgloss.Color("196")
)

func fg(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

func helpLine(s string) string {
	return fg(faint).MarginTop(1).Render(s)
}
