package progress

import (
	"testing"

	"github.com/abhisek/certprep/internal/quiz"
)

func TestAwardXP(t *testing.T) {
	tests := []struct {
		d       quiz.Difficulty
		correct bool
		want    int
	}{
		{quiz.DifficultyEasy, true, 5},
		{quiz.DifficultyMedium, true, 10},
		{quiz.DifficultyHard, true, 20},
		{quiz.DifficultyEasy, false, 0},
		{quiz.DifficultyHard, false, 0},
		{quiz.Difficulty("expert"), true, 0},
	}
	for _, tt := range tests {
		if got := AwardXP(tt.d, tt.correct); got != tt.want {
			t.Errorf("AwardXP(%s, %v) = %d, want %d", tt.d, tt.correct, got, tt.want)
		}
	}
}

func TestLevelFor(t *testing.T) {
	tests := []struct {
		xp, want int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{250, 3},
		{1000, 11},
		{-5, 1},
	}
	for _, tt := range tests {
		if got := LevelFor(tt.xp); got != tt.want {
			t.Errorf("LevelFor(%d) = %d, want %d", tt.xp, got, tt.want)
		}
	}
}

func TestXPToNextLevel(t *testing.T) {
	if got := XPToNextLevel(0); got != 100 {
		t.Errorf("XPToNextLevel(0) = %d, want 100", got)
	}
	if got := XPToNextLevel(250); got != 50 {
		t.Errorf("XPToNextLevel(250) = %d, want 50", got)
	}
}

func TestXPMonotonic(t *testing.T) {
	prior := 37
	for _, d := range quiz.Ladder {
		for _, correct := range []bool{true, false} {
			next := prior + AwardXP(d, correct)
			if next < prior {
				t.Errorf("xp decreased for %s/%v: %d -> %d", d, correct, prior, next)
			}
			if LevelFor(next) < LevelFor(prior) {
				t.Errorf("level decreased for %s/%v", d, correct)
			}
		}
	}
}
