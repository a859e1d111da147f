package progression

import "errors"

var (
	// ErrNotFound is returned when the quiz, its questions, the profile or the
	// progress record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyGraded is returned when a quiz is submitted a second time.
	ErrAlreadyGraded = errors.New("quiz already graded")

	// ErrConflict is returned when concurrent updates to the same profile or
	// progress record kept colliding until the retry budget ran out.
	ErrConflict = errors.New("concurrent update conflict")
)
