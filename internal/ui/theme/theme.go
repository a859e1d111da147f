// Package theme holds the terminal styles used by the CLI reports.
package theme

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/certprep/internal/quiz"
)

// Color palette
var (
	Primary   = lipgloss.Color("#FF9900") // AWS orange
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#8B5CF6") // Purple
	Success   = lipgloss.Color("#22C55E") // Green
	Warning   = lipgloss.Color("#EAB308") // Amber
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim)

	Label = lipgloss.NewStyle().
		Foreground(TextDim)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	Rule = lipgloss.NewStyle().
		Foreground(Border)
)

// States
var (
	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Badge = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)
)

// Progress bar
var (
	BarFilled = lipgloss.NewStyle().
			Background(Secondary)

	BarEmpty = lipgloss.NewStyle().
			Background(Border)
)

// Key renders a report label padded to a fixed column. Longer labels are
// still followed by one space.
func Key(label string) string {
	return Label.Render(fmt.Sprintf("%-15s ", label))
}

// KV renders one "label  value" report line.
func KV(label string, value any) string {
	return Key(label) + Body.Render(fmt.Sprint(value))
}

// Mark renders a check or a cross.
func Mark(ok bool) string {
	if ok {
		return Correct.Render("✓")
	}
	return Incorrect.Render("✗")
}

// Divider renders a horizontal rule of the given width.
func Divider(width int) string {
	return Rule.Render(strings.Repeat("─", max(width, 0)))
}

// Bar renders a horizontal bar of width cells for a percentage in [0, 100]
// followed by the rounded percentage.
func Bar(percent float64, width int) string {
	width = max(width, 4)
	filled := int(float64(width) * percent / 100)
	filled = min(max(filled, 0), width)

	return BarFilled.Render(strings.Repeat(" ", filled)) +
		BarEmpty.Render(strings.Repeat(" ", width-filled)) +
		Subtitle.Render(fmt.Sprintf(" %3.0f%%", min(max(percent, 0), 100)))
}

// Difficulty colors a difficulty level: easy green, medium amber, hard rose.
func Difficulty(d quiz.Difficulty) string {
	c := TextDim
	switch d {
	case quiz.DifficultyEasy:
		c = Success
	case quiz.DifficultyMedium:
		c = Warning
	case quiz.DifficultyHard:
		c = Error
	}
	return lipgloss.NewStyle().Foreground(c).Render(string(d))
}
