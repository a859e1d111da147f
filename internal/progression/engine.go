// Package progression grades a submitted quiz and turns the result into the
// full set of state changes for the user: quiz score, profile experience and
// streak, certification progress, and newly earned achievements.
package progression

import (
	"fmt"
	"time"

	"github.com/abhisek/certprep/internal/achievements"
	"github.com/abhisek/certprep/internal/progress"
	"github.com/abhisek/certprep/internal/quiz"
)

// Input is everything the engine reads for one evaluation.
type Input struct {
	Quiz      quiz.Quiz
	Questions []quiz.Question
	Answers   map[string]quiz.Answer
	Profile   progress.Profile
	Progress  progress.Progress
	Held      achievements.Held
	Now       time.Time
}

// Outcome is everything the engine decided for one evaluation. It carries
// the values to write; it does not write them.
type Outcome struct {
	Quiz         quiz.Quiz
	Questions    []quiz.Question
	Domains      map[string]quiz.DomainTally
	Accuracy     float64
	Profile      progress.Profile
	Progress     progress.Progress
	Achievements []achievements.Achievement
}

// Score returns the number of correctly answered questions.
func (o *Outcome) Score() int {
	if o.Quiz.Score == nil {
		return 0
	}
	return *o.Quiz.Score
}

// QuizXP returns the experience earned by this quiz.
func (o *Outcome) QuizXP() int {
	if o.Quiz.XPEarned == nil {
		return 0
	}
	return *o.Quiz.XPEarned
}

// Engine composes the grading and progression rules. It is pure and safe for
// concurrent use.
type Engine struct {
	rules []achievements.Rule
}

// NewEngine returns an engine using the given achievement rules, or the
// built-in rules when none are given.
func NewEngine(rules ...achievements.Rule) *Engine {
	if len(rules) == 0 {
		rules = achievements.DefaultRules()
	}
	return &Engine{rules: rules}
}

// Compute grades the quiz and derives every state change. Answers for
// question ids not in the quiz are ignored.
func (e *Engine) Compute(in Input) (*Outcome, error) {
	if in.Quiz.Graded() {
		return nil, fmt.Errorf("quiz %s: %w", in.Quiz.ID, ErrAlreadyGraded)
	}
	if len(in.Questions) == 0 {
		return nil, fmt.Errorf("quiz %s has no questions: %w", in.Quiz.ID, ErrNotFound)
	}
	now := in.Now.UTC()

	graded := make([]quiz.Question, len(in.Questions))
	score, quizXP := 0, 0
	for i, q := range in.Questions {
		var submitted *quiz.Answer
		if a, ok := in.Answers[q.ID]; ok {
			submitted = &a
		}
		correct := quiz.Grade(q.Type, q.Correct, submitted)
		xp := progress.AwardXP(q.Difficulty, correct)

		q.Submitted = submitted
		q.IsCorrect = &correct
		q.XPEarned = xp
		graded[i] = q

		if correct {
			score++
		}
		quizXP += xp
	}
	total := len(graded)
	accuracy := progress.Accuracy(score, total)
	domains := quiz.TallyDomains(graded)

	gradedQuiz := in.Quiz
	gradedQuiz.Score = &score
	gradedQuiz.XPEarned = &quizXP
	gradedQuiz.CompletedAt = &now

	today := progress.DayOf(now)
	prof := in.Profile
	prof.XP += quizXP
	prof.Level = progress.LevelFor(prof.XP)
	prof.CurrentStreak = progress.NextStreak(in.Profile.LastQuizDate, in.Profile.CurrentStreak, today)
	prof.BestStreak = max(prof.BestStreak, prof.CurrentStreak)
	prof.LastQuizDate = &today
	prof.UpdatedAt = now

	prog := in.Progress
	prog.TotalXP += quizXP
	prog.QuizzesCompleted++
	prog.QuestionsAnswered += total
	prog.CorrectAnswers += score
	prog.Accuracy = progress.Accuracy(prog.CorrectAnswers, prog.QuestionsAnswered)
	prog.CurrentDifficulty = progress.NextDifficulty(in.Quiz.Difficulty, accuracy)
	prog.WeakDomains = progress.WeakDomains(domains)
	prog.UpdatedAt = now

	facts := achievements.Facts{
		Streak:            prof.CurrentStreak,
		QuizAccuracy:      accuracy,
		QuestionsAnswered: prog.QuestionsAnswered,
	}
	var granted []achievements.Achievement
	for _, d := range achievements.Evaluate(e.rules, facts, in.Held) {
		granted = append(granted, d.Grant(in.Quiz.UserID, in.Quiz.ID, now))
	}

	return &Outcome{
		Quiz:         gradedQuiz,
		Questions:    graded,
		Domains:      domains,
		Accuracy:     accuracy,
		Profile:      prof,
		Progress:     prog,
		Achievements: granted,
	}, nil
}
