package display

import "github.com/charmbracelet/lipgloss"

var (
	// BannerStyle is a muted slate for the startup banner.
	BannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	activeTabStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#3f3f46")).
			Foreground(lipgloss.Color("#fde68a")).
			Bold(true).
			Padding(0, 2)

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a")).
			Padding(0, 2)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a1a1aa"))

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4d4d8")).
			Bold(true)

	primaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4d4d8"))

	secondaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	preFermentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bbf7d0")).
			Italic(true)

	totalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fde68a")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bae6fd"))

	urgentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fca5a5"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#52525b")).
			Padding(0, 1)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))
)
