package tui

import "github.com/charmbracelet/lipgloss"

// Color palette.
var (
	ColorPrimary   = lipgloss.Color("39")  // Blue
	ColorSecondary = lipgloss.Color("245") // Gray
	ColorSuccess   = lipgloss.Color("34")  // Green
	ColorError     = lipgloss.Color("196") // Red
)

var (
	QuestionMarkStyle = lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
	QuestionStyle     = lipgloss.NewStyle().Bold(true)
	DefaultValueStyle = lipgloss.NewStyle().Foreground(ColorSecondary)
	AnswerStyle       = lipgloss.NewStyle().Foreground(ColorPrimary)
	SpinnerStyle      = lipgloss.NewStyle().Foreground(ColorPrimary)
	SuccessStyle      = lipgloss.NewStyle().Foreground(ColorSuccess)
	ErrorStyle        = lipgloss.NewStyle().Foreground(ColorError)
	HighlightStyle    = lipgloss.NewStyle().Foreground(ColorPrimary)
)

// Success renders a check-marked success line.
func Success(msg string) string {
	return SuccessStyle.Render("✔") + " " + msg
}

// Failure renders a cross-marked failure line.
func Failure(msg string) string {
	return ErrorStyle.Render("✖") + " " + msg
}

// Highlight colours a file name or path inside a message.
func Highlight(s string) string {
	return HighlightStyle.Render(s)
}
