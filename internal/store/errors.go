package store

import "errors"

var (
	// ErrNotFound is returned when a row does not exist.
	ErrNotFound = errors.New("store: not found")

	// ErrVersionConflict is returned when an optimistic update matched no
	// row because another writer bumped the version first.
	ErrVersionConflict = errors.New("store: version conflict")

	// ErrQuizCompleted is returned when completing a quiz that already has a
	// completion time.
	ErrQuizCompleted = errors.New("store: quiz already completed")
)
