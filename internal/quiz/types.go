// Package quiz holds the quiz data model and the pure grading rules that
// operate on it.
package quiz

import (
	"fmt"
	"strings"
	"time"
)

// Difficulty is a rung on the three-step difficulty ladder.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Ladder lists the difficulties from easiest to hardest.
var Ladder = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// Valid reports whether d is one of the ladder values.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Harder returns the next rung up, staying at hard.
func (d Difficulty) Harder() Difficulty {
	switch d {
	case DifficultyEasy:
		return DifficultyMedium
	default:
		return DifficultyHard
	}
}

// Easier returns the next rung down, staying at easy.
func (d Difficulty) Easier() Difficulty {
	switch d {
	case DifficultyHard:
		return DifficultyMedium
	default:
		return DifficultyEasy
	}
}

// ParseDifficulty parses a case-insensitive difficulty label.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", fmt.Errorf("unknown difficulty %q", s)
	}
	return d, nil
}

// QuestionType selects the grading rule for a question.
type QuestionType string

const (
	// SingleChoice questions have exactly one correct option.
	SingleChoice QuestionType = "multiple_choice"
	// MultiSelect questions have a set of correct options.
	MultiSelect QuestionType = "multi_select"
	// TrueFalse questions offer exactly the options "True" and "False".
	TrueFalse QuestionType = "true_false"
)

func (t QuestionType) Valid() bool {
	switch t {
	case SingleChoice, MultiSelect, TrueFalse:
		return true
	}
	return false
}

// Label returns a short human-readable name.
func (t QuestionType) Label() string {
	switch t {
	case SingleChoice:
		return "Multiple choice"
	case MultiSelect:
		return "Multi-select"
	case TrueFalse:
		return "True/False"
	}
	return string(t)
}

// Certification is a target exam a quiz is generated for.
type Certification struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Quiz is one generated quiz instance. Score, XPEarned and CompletedAt are
// unset until the quiz has been graded, and are written exactly once.
type Quiz struct {
	ID              string     `json:"id"`
	UserID          string     `json:"userId"`
	CertificationID string     `json:"certificationId"`
	Difficulty      Difficulty `json:"difficulty"`
	TotalQuestions  int        `json:"totalQuestions"`
	Score           *int       `json:"score,omitempty"`
	XPEarned        *int       `json:"xpEarned,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	CompletedAt     *time.Time `json:"completedAt,omitempty"`
}

// Graded reports whether the quiz has been evaluated.
func (q *Quiz) Graded() bool {
	return q.CompletedAt != nil
}

// Question is a single quiz question. Submitted, IsCorrect and XPEarned are
// populated by grading.
type Question struct {
	ID          string       `json:"id"`
	QuizID      string       `json:"quizId"`
	Position    int          `json:"position"`
	Text        string       `json:"text"`
	Type        QuestionType `json:"type"`
	Options     []string     `json:"options"`
	Correct     Answer       `json:"correctAnswer"`
	Explanation string       `json:"explanation"`
	Difficulty  Difficulty   `json:"difficulty"`
	Domain      string       `json:"domain"`

	Submitted *Answer `json:"userAnswer,omitempty"`
	IsCorrect *bool   `json:"isCorrect,omitempty"`
	XPEarned  int     `json:"xpEarned"`
}

// Graded reports whether this question carries a grading result.
func (q *Question) Graded() bool {
	return q.IsCorrect != nil
}
