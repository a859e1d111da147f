package progress

import "github.com/abhisek/certprep/internal/quiz"

const (
	// AdvanceAccuracy is the quiz accuracy at or above which the next quiz
	// gets one step harder.
	AdvanceAccuracy = 80.0
	// RegressAccuracy is the quiz accuracy below which the next quiz gets one
	// step easier.
	RegressAccuracy = 50.0
)

// NextDifficulty returns the difficulty for the next quiz given the one just
// completed and its accuracy percentage. An unknown current difficulty is
// treated as easy.
func NextDifficulty(current quiz.Difficulty, accuracy float64) quiz.Difficulty {
	if !current.Valid() {
		current = quiz.DifficultyEasy
	}
	switch {
	case accuracy >= AdvanceAccuracy:
		return current.Harder()
	case accuracy < RegressAccuracy:
		return current.Easier()
	default:
		return current
	}
}
