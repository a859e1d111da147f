package quizgen

import (
	"strings"

	"github.com/abhisek/certprep/internal/quiz"
)

const (
	maxQuestionText = 1500
	maxExplanation  = 3000
)

// StructuralValidator checks required text fields and enum values.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(drafts []Draft, _ Input) *ValidationError {
	for i, d := range drafts {
		switch {
		case strings.TrimSpace(d.QuestionText) == "":
			return reject(v, i, "question_text is empty")
		case len(d.QuestionText) > maxQuestionText:
			return reject(v, i, "question_text exceeds %d characters", maxQuestionText)
		case strings.TrimSpace(d.Explanation) == "":
			return reject(v, i, "explanation is empty")
		case len(d.Explanation) > maxExplanation:
			return reject(v, i, "explanation exceeds %d characters", maxExplanation)
		case strings.TrimSpace(d.Domain) == "":
			return reject(v, i, "domain is empty")
		case !quiz.QuestionType(d.QuestionType).Valid():
			return reject(v, i, "unknown question_type %q", d.QuestionType)
		case !quiz.Difficulty(d.Difficulty).Valid():
			return reject(v, i, "unknown difficulty %q", d.Difficulty)
		}
	}
	return nil
}
