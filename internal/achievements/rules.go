package achievements

import "time"

const (
	// StreakTarget is the streak length that earns the streak badge.
	StreakTarget = 7
	// PerfectScoreAccuracy is the minimum quiz accuracy for the accuracy badge.
	PerfectScoreAccuracy = 90.0
	// QuestionMilestone is the cumulative answer count for the milestone badge.
	QuestionMilestone = 100
)

// Definition describes a badge and whether it repeats per quiz.
type Definition struct {
	Type        Type
	Name        string
	Description string
	PerQuiz     bool
}

// Key returns the (type, name) pair of the badge.
func (d Definition) Key() Key {
	return Key{Type: d.Type, Name: d.Name}
}

// Grant materialises the badge for a user. Per-quiz badges carry the quiz id
// as occurrence so each quiz can earn one; once-ever badges use an empty
// occurrence.
func (d Definition) Grant(userID, quizID string, at time.Time) Achievement {
	a := Achievement{
		UserID:      userID,
		Type:        d.Type,
		Name:        d.Name,
		Description: d.Description,
		QuizID:      quizID,
		EarnedAt:    at,
	}
	if d.PerQuiz {
		a.Occurrence = quizID
	}
	return a
}

var (
	SevenDayStreak = Definition{
		Type:        TypeStreak,
		Name:        "7-Day Streak",
		Description: "Completed quizzes for 7 consecutive days",
	}
	PerfectScore = Definition{
		Type:        TypeAccuracy,
		Name:        "Perfect Score",
		Description: "Achieved 90% or higher accuracy on a quiz",
		PerQuiz:     true,
	}
	HundredQuestions = Definition{
		Type:        TypeMilestone,
		Name:        "100 Questions",
		Description: "Answered 100 questions",
	}
)

// Facts is the post-grading state the rules look at.
type Facts struct {
	// Streak is the streak after this quiz.
	Streak int
	// QuizAccuracy is this quiz's accuracy percentage.
	QuizAccuracy float64
	// QuestionsAnswered is the cumulative count including this quiz.
	QuestionsAnswered int
}

// Rule pairs a badge with the predicate that earns it.
type Rule struct {
	Definition Definition
	Earned     func(f Facts, held Held) bool
}

// StreakEarned grants the streak badge the first time the streak reaches
// exactly the target.
func StreakEarned(f Facts, held Held) bool {
	return f.Streak == StreakTarget && !held.Has(SevenDayStreak.Key())
}

// PerfectScoreEarned grants the accuracy badge on every quiz at or above the
// threshold. It does not look at held badges.
func PerfectScoreEarned(f Facts, _ Held) bool {
	return f.QuizAccuracy >= PerfectScoreAccuracy
}

// MilestoneEarned grants the milestone badge once the cumulative answer count
// reaches the target, unless already held.
func MilestoneEarned(f Facts, held Held) bool {
	return f.QuestionsAnswered >= QuestionMilestone && !held.Has(HundredQuestions.Key())
}

// DefaultRules returns the built-in rule set.
func DefaultRules() []Rule {
	return []Rule{
		{Definition: SevenDayStreak, Earned: StreakEarned},
		{Definition: PerfectScore, Earned: PerfectScoreEarned},
		{Definition: HundredQuestions, Earned: MilestoneEarned},
	}
}

// Evaluate runs every rule and returns the badges earned, in rule order.
func Evaluate(rules []Rule, f Facts, held Held) []Definition {
	var earned []Definition
	for _, r := range rules {
		if r.Earned(f, held) {
			earned = append(earned, r.Definition)
		}
	}
	return earned
}

// Lookup returns the built-in definition with the given type and name.
func Lookup(t Type, name string) (Definition, bool) {
	for _, r := range DefaultRules() {
		if r.Definition.Type == t && r.Definition.Name == name {
			return r.Definition, true
		}
	}
	return Definition{}, false
}
