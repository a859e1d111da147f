package theme

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"github.com/abhisek/certprep/internal/quiz"
)

func TestBarWidth(t *testing.T) {
	tests := []struct {
		percent float64
		width   int
		want    int
	}{
		{0, 20, 25},
		{55, 20, 25},
		{100, 20, 25},
		{140, 20, 25},
		{-5, 20, 25},
		{50, 1, 9},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, lipgloss.Width(Bar(tt.percent, tt.width)), "percent=%v width=%d", tt.percent, tt.width)
	}
}

func TestBarPercentLabel(t *testing.T) {
	assert.True(t, strings.HasSuffix(ansi.Strip(Bar(66.6, 10)), " 67%"))
	assert.True(t, strings.HasSuffix(ansi.Strip(Bar(250, 10)), "100%"))
}

func TestHelpers(t *testing.T) {
	assert.Contains(t, Mark(true), "✓")
	assert.Contains(t, Mark(false), "✗")
	assert.Contains(t, KV("Level", 3), "3")
	assert.Equal(t, 16, lipgloss.Width(Key("Level")))
	assert.Equal(t, 20, lipgloss.Width(Key("Security & Identity")))
	assert.Equal(t, 0, lipgloss.Width(Divider(-1)))
	assert.Contains(t, Difficulty(quiz.DifficultyHard), "hard")
}
