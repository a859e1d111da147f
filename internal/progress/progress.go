// Package progress holds a user's cumulative state and the rules that move it
// forward after each graded quiz: experience and level, the daily streak, the
// adaptive difficulty and the weak-domain list.
package progress

import (
	"math"
	"sort"
	"time"

	"github.com/abhisek/certprep/internal/quiz"
)

// WeakDomainThreshold is the accuracy percentage below which a domain is weak.
const WeakDomainThreshold = 60.0

// Profile is the per-user record shared across certifications.
type Profile struct {
	UserID        string    `json:"userId"`
	DisplayName   string    `json:"displayName,omitempty"`
	XP            int       `json:"xp"`
	Level         int       `json:"level"`
	CurrentStreak int       `json:"currentStreak"`
	BestStreak    int       `json:"bestStreak"`
	LastQuizDate  *Day      `json:"lastQuizDate,omitempty"`
	Version       int       `json:"-"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// NewProfile returns a fresh profile at level 1.
func NewProfile(userID string, now time.Time) Profile {
	return Profile{UserID: userID, Level: 1, Version: 1, CreatedAt: now, UpdatedAt: now}
}

// LastQuizDay returns the last quiz day formatted as YYYY-MM-DD, or "".
func (p Profile) LastQuizDay() string {
	if p.LastQuizDate == nil {
		return ""
	}
	return p.LastQuizDate.String()
}

// WeakDomain is a domain that fell below the threshold in the last quiz.
type WeakDomain struct {
	Name     string `json:"name"`
	Accuracy int    `json:"accuracy"`
}

// Progress is the per user and certification record.
type Progress struct {
	UserID            string          `json:"userId"`
	CertificationID   string          `json:"certificationId"`
	TotalXP           int             `json:"totalXp"`
	QuizzesCompleted  int             `json:"totalQuizzes"`
	QuestionsAnswered int             `json:"totalQuestionsAnswered"`
	CorrectAnswers    int             `json:"correctAnswers"`
	Accuracy          float64         `json:"accuracy"`
	CurrentDifficulty quiz.Difficulty `json:"currentDifficulty"`
	WeakDomains       []WeakDomain    `json:"weakDomains"`
	Version           int             `json:"-"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// NewProgress returns an empty progress record starting at difficulty d.
func NewProgress(userID, certificationID string, d quiz.Difficulty, now time.Time) Progress {
	if !d.Valid() {
		d = quiz.DifficultyEasy
	}
	return Progress{
		UserID:            userID,
		CertificationID:   certificationID,
		CurrentDifficulty: d,
		WeakDomains:       []WeakDomain{},
		Version:           1,
		UpdatedAt:         now,
	}
}

// WeakDomainNames returns the names of the stored weak domains in order.
func (p Progress) WeakDomainNames() []string {
	names := make([]string, 0, len(p.WeakDomains))
	for _, w := range p.WeakDomains {
		names = append(names, w.Name)
	}
	return names
}

// Accuracy returns correct/total as a percentage, or 0 when total is 0.
func Accuracy(correct, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(correct) / float64(total) * 100
}

// WeakDomains returns the domains whose accuracy is below the threshold,
// ordered by accuracy and then by name. Accuracy is rounded to a whole
// percentage for display.
func WeakDomains(tallies map[string]quiz.DomainTally) []WeakDomain {
	type scored struct {
		name string
		acc  float64
	}
	var weak []scored
	for name, t := range tallies {
		if t.Total == 0 {
			continue
		}
		if acc := t.Accuracy(); acc < WeakDomainThreshold {
			weak = append(weak, scored{name, acc})
		}
	}
	sort.Slice(weak, func(i, j int) bool {
		if weak[i].acc != weak[j].acc {
			return weak[i].acc < weak[j].acc
		}
		return weak[i].name < weak[j].name
	})

	out := make([]WeakDomain, 0, len(weak))
	for _, w := range weak {
		out = append(out, WeakDomain{Name: w.name, Accuracy: int(math.Round(w.acc))})
	}
	return out
}
