package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorSlate  = lipgloss.Color("#36454F")
	colorSage   = lipgloss.Color("#8FBC8F")
	colorCream  = lipgloss.Color("#FDFBF7")
	colorMuted  = lipgloss.Color("#8A8A8A")
	colorDanger = lipgloss.Color("#C0504D")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorSlate).Background(colorCream).Padding(0, 1)

	profileStyle         = lipgloss.NewStyle().Padding(0, 1).Foreground(colorMuted)
	profileSelectedStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(colorCream).Background(colorSlate)

	labelStyle        = lipgloss.NewStyle().Bold(true).Foreground(colorSlate)
	labelFocusedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorSage)
	mutedStyle        = lipgloss.NewStyle().Foreground(colorMuted)

	paneStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorMuted).Padding(0, 1)

	userMsgStyle = lipgloss.NewStyle().Foreground(colorSlate).Bold(true)
	botMsgStyle  = lipgloss.NewStyle().Foreground(colorSage)

	toastStyle      = lipgloss.NewStyle().Foreground(colorCream).Background(colorSage).Padding(0, 1)
	toastErrorStyle = lipgloss.NewStyle().Foreground(colorCream).Background(colorDanger).Padding(0, 1)

	menuStyle = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(colorSlate).Padding(0, 2)
)
