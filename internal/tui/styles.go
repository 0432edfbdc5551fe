package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/hiroki-koketsu/taskmate/internal/timeline"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))

	tabStyle       = lipgloss.NewStyle().Padding(0, 2).Foreground(lipgloss.Color("245"))
	activeTabStyle = lipgloss.NewStyle().Padding(0, 2).Bold(true).
			Foreground(lipgloss.Color("231")).Background(lipgloss.Color("63"))

	headerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Align(lipgloss.Center)
	todayHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")).Align(lipgloss.Center)

	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	emptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(1, 2)

	selectedStyle = lipgloss.NewStyle().Reverse(true)
	overdueStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	doneStyle     = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("243"))
)

// colorStyles maps the layout engine's visual categories onto terminal
// colors.
var colorStyles = map[timeline.Color]lipgloss.Style{
	timeline.ColorHigh:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	timeline.ColorMedium:  lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
	timeline.ColorLow:     lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
	timeline.ColorDefault: lipgloss.NewStyle().Foreground(lipgloss.Color("135")),
	timeline.ColorMuted:   lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
}
