package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			MarginBottom(1)

	tableStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))

	labelStyle = lipgloss.NewStyle().
			Width(12).
			Foreground(lipgloss.Color("245"))

	focusedLabelStyle = labelStyle.
				Foreground(lipgloss.Color("12")).
				Bold(true)

	buttonStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Background(lipgloss.Color("12")).
			Foreground(lipgloss.Color("0"))

	disabledButtonStyle = buttonStyle.
				Background(lipgloss.Color("238")).
				Foreground(lipgloss.Color("245"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("9")).
			Padding(1, 3)
)
