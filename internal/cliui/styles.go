// Package cliui provides the small set of static lipgloss styles the
// command-line output uses for diagnostics, distinct from a full TUI.
package cliui

import "github.com/charmbracelet/lipgloss"

var (
	errorColor   = lipgloss.Color("203")
	changedColor = lipgloss.Color("220")
	okColor      = lipgloss.Color("78")
)

// ErrorStyle renders a failure line, e.g. a per-file formatting error
// reported by a batch run.
func ErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(errorColor)
}

// ChangedStyle renders a path that was reformatted.
func ChangedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(changedColor)
}

// OKStyle renders a path that needed no changes.
func OKStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(okColor)
}
