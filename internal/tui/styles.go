package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/fitlog/internal/stats"
)

var (
	colorPrimary   = lipgloss.Color("#FF7A45") // effort orange
	colorSecondary = lipgloss.Color("#4FD1C5")
	colorAccent    = lipgloss.Color("#F6416C")
	colorMuted     = lipgloss.Color("#6B7280")
	colorSuccess   = lipgloss.Color("#48BB78")
	colorWarning   = lipgloss.Color("#ECC94B")
	colorError     = lipgloss.Color("#E53E3E")
	colorFg        = lipgloss.Color("#E2E8F0")
	colorSubtle    = lipgloss.Color("#3B4252")
	colorHighlight = lipgloss.Color("#63B3ED")
	colorViolet    = lipgloss.Color("#B794F4")
)

func fg(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

func bold(c lipgloss.Color) lipgloss.Style { return fg(c).Bold(true) }

func boxed(border lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(border)
}

var (
	titleStyle     = bold(colorFg)
	subtitleStyle  = fg(colorMuted).Italic(true)
	mutedStyle     = fg(colorMuted)
	accentStyle    = bold(colorAccent)
	successStyle   = fg(colorSuccess)
	warningStyle   = fg(colorWarning)
	errorStyle     = bold(colorError)
	highlightStyle = fg(colorHighlight)
	quoteStyle     = fg(colorSecondary).Italic(true)

	activeTabStyle = bold(colorPrimary).
			Border(lipgloss.ThickBorder(), false, false, true, false).
			BorderForeground(colorPrimary).
			Padding(0, 2)
	inactiveTabStyle = fg(colorMuted).Padding(0, 2)

	panelStyle       = boxed(colorSubtle).Padding(1, 2)
	activePanelStyle = boxed(colorPrimary).Padding(1, 2)
	cardStyle        = boxed(colorSubtle).Padding(0, 1).Align(lipgloss.Center)
	cardValueStyle   = bold(colorHighlight)

	headerStyle = lipgloss.NewStyle().Padding(0, 1)
	footerStyle = fg(colorMuted).Padding(0, 1)

	selectedItemStyle = bold(colorPrimary)
	normalItemStyle   = fg(colorFg)
)

// clockStyle renders the session clock in the colour of its state.
func clockStyle(c lipgloss.Color, width int) lipgloss.Style {
	return bold(c).Width(width).Align(lipgloss.Center)
}

var seriesColors = []lipgloss.Color{
	colorPrimary, colorSecondary, colorHighlight, colorWarning, colorSuccess, colorAccent, colorViolet,
}

func seriesColor(i int) lipgloss.Color {
	return seriesColors[i%len(seriesColors)]
}

var bandColors = map[stats.Band]lipgloss.Color{
	stats.Underweight: colorHighlight,
	stats.Normal:      colorSuccess,
	stats.Overweight:  colorWarning,
	stats.Obese:       colorError,
}

func bandStyle(b stats.Band) lipgloss.Style {
	c, ok := bandColors[b]
	if !ok {
		c = colorMuted
	}
	return bold(c)
}
