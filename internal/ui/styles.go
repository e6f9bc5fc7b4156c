// Package ui — терминальный интерфейс администратора каталога на bubbletea.
package ui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent      = lipgloss.Color("#8BC34A")
	colorDestructive = lipgloss.Color("#e53935")
	colorMuted       = lipgloss.Color("#8a94a6")
	colorWarning     = lipgloss.Color("#FFC107")
)

// Styles — набор стилей, общий для всех экранов.
type Styles struct {
	Title    lipgloss.Style
	Label    lipgloss.Style
	Selected lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Invalid  lipgloss.Style
	Alert    lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(colorAccent).MarginBottom(1),
		Label:    lipgloss.NewStyle().Width(14),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
		Muted:    lipgloss.NewStyle().Foreground(colorMuted),
		Error:    lipgloss.NewStyle().Foreground(colorDestructive),
		Invalid:  lipgloss.NewStyle().Foreground(colorDestructive).Bold(true),
		Alert: lipgloss.NewStyle().
			Foreground(colorWarning).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorWarning).
			Padding(0, 1),
	}
}
