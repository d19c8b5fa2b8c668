package report

import "github.com/charmbracelet/lipgloss"

// Color palette - keeping it minimal and accessible.
var (
	colorSuccess = lipgloss.Color("34")  // Green
	colorWarning = lipgloss.Color("214") // Orange
	colorError   = lipgloss.Color("196") // Red
	colorMuted   = lipgloss.Color("240") // Dark gray
)

var (
	kindStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorError)

	fileStyle = lipgloss.NewStyle().
			Underline(true)

	messageStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	successStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	failureStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWarning)
)

const (
	symbolCheck = "✓"
	symbolCross = "✗"
)

// painter applies a style only when styling is enabled.
type painter bool

func (p painter) paint(style lipgloss.Style, s string) string {
	if !p {
		return s
	}
	return style.Render(s)
}
