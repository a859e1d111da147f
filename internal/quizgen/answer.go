package quizgen

import (
	"slices"

	"github.com/abhisek/certprep/internal/quiz"
)

// AnswerValidator checks that correct answers are drawn from the options
// and have the shape the question type needs.
type AnswerValidator struct{}

func (v *AnswerValidator) Name() string { return "answer" }

func (v *AnswerValidator) Validate(drafts []Draft, _ Input) *ValidationError {
	for i, d := range drafts {
		ans := d.CorrectAnswer
		switch quiz.QuestionType(d.QuestionType) {
		case quiz.SingleChoice, quiz.TrueFalse:
			if ans.IsMultiple() {
				return reject(v, i, "%s needs a single correct_answer, got a list", d.QuestionType)
			}
			if !slices.Contains(d.Options, ans.Value()) {
				return reject(v, i, "correct_answer %q is not one of the options", ans.Value())
			}

		case quiz.MultiSelect:
			if !ans.IsMultiple() {
				return reject(v, i, "multi_select needs a list correct_answer")
			}
			vals := ans.Values()
			if len(vals) == 0 {
				return reject(v, i, "correct_answer is empty")
			}
			seen := make(map[string]bool, len(vals))
			for _, a := range vals {
				if seen[a] {
					return reject(v, i, "correct_answer repeats %q", a)
				}
				seen[a] = true
				if !slices.Contains(d.Options, a) {
					return reject(v, i, "correct_answer %q is not one of the options", a)
				}
			}
		}
	}
	return nil
}
