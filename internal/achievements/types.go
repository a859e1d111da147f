// Package achievements defines the badges a user can earn and the pure rules
// that decide when a graded quiz earns one.
package achievements

import "time"

// Type identifies the category of achievement.
type Type string

const (
	TypeStreak    Type = "streak"
	TypeAccuracy  Type = "accuracy"
	TypeMilestone Type = "milestone"
)

// AllTypes returns all achievement types in display order.
func AllTypes() []Type {
	return []Type{TypeStreak, TypeAccuracy, TypeMilestone}
}

// DisplayName returns a human-readable label for the type.
func (t Type) DisplayName() string {
	switch t {
	case TypeStreak:
		return "Streak"
	case TypeAccuracy:
		return "Accuracy"
	case TypeMilestone:
		return "Milestone"
	default:
		return string(t)
	}
}

// Icon returns the display icon for the type.
func (t Type) Icon() string {
	switch t {
	case TypeStreak:
		return "⚡"
	case TypeAccuracy:
		return "🎯"
	case TypeMilestone:
		return "🏆"
	default:
		return "✦"
	}
}

// Achievement is a granted badge. Occurrence is empty for once-ever badges
// and holds the quiz id for badges that can be earned once per quiz.
type Achievement struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Type        Type      `json:"type"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	QuizID      string    `json:"quizId,omitempty"`
	Occurrence  string    `json:"-"`
	EarnedAt    time.Time `json:"earnedAt"`
}

// Key identifies a once-ever achievement.
type Key struct {
	Type Type
	Name string
}

// Key returns the (type, name) pair of the achievement.
func (a Achievement) Key() Key {
	return Key{Type: a.Type, Name: a.Name}
}

// Held is the set of achievements a user already has.
type Held map[Key]bool

// Has reports whether the user holds an achievement with the given key.
func (h Held) Has(k Key) bool {
	return h[k]
}

// HeldFrom builds a Held set from granted achievements.
func HeldFrom(list []Achievement) Held {
	h := make(Held, len(list))
	for _, a := range list {
		h[a.Key()] = true
	}
	return h
}
