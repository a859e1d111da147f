package quizgen

import (
	"slices"
	"strings"

	"github.com/abhisek/certprep/internal/quiz"
)

// Options of a true_false question, in this order.
var trueFalseOptions = []string{"True", "False"}

// OptionsValidator checks each question's option list.
type OptionsValidator struct{}

func (v *OptionsValidator) Name() string { return "options" }

func (v *OptionsValidator) Validate(drafts []Draft, _ Input) *ValidationError {
	for i, d := range drafts {
		if quiz.QuestionType(d.QuestionType) == quiz.TrueFalse {
			if !slices.Equal(d.Options, trueFalseOptions) {
				return reject(v, i, "true_false options must be exactly [True False], got %q", d.Options)
			}
			continue
		}

		if len(d.Options) < 2 {
			return reject(v, i, "needs at least 2 options, got %d", len(d.Options))
		}
		seen := make(map[string]bool, len(d.Options))
		for _, o := range d.Options {
			if strings.TrimSpace(o) == "" {
				return reject(v, i, "empty option")
			}
			if seen[o] {
				return reject(v, i, "duplicate option %q", o)
			}
			seen[o] = true
		}
	}
	return nil
}
