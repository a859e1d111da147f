package progress

import "github.com/abhisek/certprep/internal/quiz"

// XPPerLevel is the amount of experience between consecutive levels.
const XPPerLevel = 100

// xpTable is the award for a correct answer at each difficulty.
var xpTable = map[quiz.Difficulty]int{
	quiz.DifficultyEasy:   5,
	quiz.DifficultyMedium: 10,
	quiz.DifficultyHard:   20,
}

// AwardXP returns the experience for one answer. Incorrect answers and
// unknown difficulties award nothing.
func AwardXP(d quiz.Difficulty, correct bool) int {
	if !correct {
		return 0
	}
	return xpTable[d]
}

// LevelFor derives the level from cumulative experience.
func LevelFor(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp/XPPerLevel + 1
}

// XPToNextLevel returns how much experience is missing to reach the next level.
func XPToNextLevel(xp int) int {
	return LevelFor(xp)*XPPerLevel - max(xp, 0)
}
