package render

import "charm.land/lipgloss/v2"

// Console palette.
var (
	Primary   = lipgloss.Color("#8B5CF6") // Vivid Purple
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Success   = lipgloss.Color("#22C55E") // Green
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	Border    = lipgloss.Color("#334155") // Slate
)

var (
	docTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary)

	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Secondary)

	subheadingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Text)

	bodyStyle = lipgloss.NewStyle().
			Foreground(Text)

	noteStyle = lipgloss.NewStyle().
			Foreground(TextDim).
			Italic(true)

	correctStyle = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 1)
)
