package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.Color("#C89B3C")
	muted  = lipgloss.Color("#7B7A77")

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(accent)
	subtitleStyle = lipgloss.NewStyle().Italic(true).Foreground(muted)
	helpStyle     = lipgloss.NewStyle().Foreground(muted)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0A1428")).Background(accent)
	tabStyle      = lipgloss.NewStyle().Padding(0, 2)
	activeTab     = tabStyle.Foreground(lipgloss.Color("#0A1428")).Background(accent).Bold(true)
	buttonStyle   = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder()).BorderForeground(muted)
	activeButton  = buttonStyle.BorderForeground(accent).Foreground(accent).Bold(true)
	panelStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(muted).Padding(0, 1)
)
