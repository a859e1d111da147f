package quizgen

import (
	"errors"
	"fmt"
)

// ErrMalformed marks model output that could not be used. It is matched
// by every *ValidationError.
var ErrMalformed = errors.New("malformed generator output")

// Validator checks a parsed reply. Implementations must be stateless.
type Validator interface {
	Name() string
	Validate(drafts []Draft, in Input) *ValidationError
}

// ValidationError says why a reply was rejected.
type ValidationError struct {
	Validator string
	Message   string
	// Retryable is set when another sample is likely to pass.
	Retryable bool
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrMalformed
}

func reject(v Validator, i int, format string, args ...any) *ValidationError {
	return &ValidationError{
		Validator: v.Name(),
		Message:   fmt.Sprintf("question %d: ", i+1) + fmt.Sprintf(format, args...),
		Retryable: true,
	}
}

// DefaultValidators is the chain run on every reply, in order.
func DefaultValidators(maxQuestions int) []Validator {
	return []Validator{
		&CountValidator{Max: maxQuestions},
		&StructuralValidator{},
		&OptionsValidator{},
		&AnswerValidator{},
	}
}

// CountValidator bounds the number of questions and requires the count the
// input's mix asked for.
type CountValidator struct {
	Max int
}

func (v *CountValidator) Name() string { return "count" }

func (v *CountValidator) Validate(drafts []Draft, in Input) *ValidationError {
	if len(drafts) == 0 {
		return &ValidationError{Validator: v.Name(), Message: "no questions", Retryable: true}
	}
	if v.Max > 0 && len(drafts) > v.Max {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("%d questions exceeds the maximum of %d", len(drafts), v.Max),
			Retryable: true,
		}
	}
	if want := in.Mix.Total(); want > 0 && len(drafts) != want {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("got %d questions, want %d", len(drafts), want),
			Retryable: true,
		}
	}
	return nil
}
