package progression

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/abhisek/certprep/internal/achievements"
	"github.com/abhisek/certprep/internal/lock"
	"github.com/abhisek/certprep/internal/logger"
	"github.com/abhisek/certprep/internal/progress"
	"github.com/abhisek/certprep/internal/quiz"
	"github.com/abhisek/certprep/internal/store"
)

// Config tunes the optimistic-concurrency retry loop.
type Config struct {
	// MaxAttempts bounds how many times an evaluation is retried after a
	// version conflict. Default: 3.
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxAttempts: 3,
		InitialWait: 10 * time.Millisecond,
		MaxWait:     200 * time.Millisecond,
	}
}

// QuestionResult is the grading outcome of one question.
type QuestionResult struct {
	QuestionID    string       `json:"questionId"`
	Submitted     *quiz.Answer `json:"userAnswer"`
	CorrectAnswer quiz.Answer  `json:"correctAnswer"`
	IsCorrect     bool         `json:"isCorrect"`
	XPEarned      int          `json:"xpEarned"`
	Explanation   string       `json:"explanation"`
}

// Result is the public outcome of one evaluation.
type Result struct {
	QuizID         string                `json:"quizId"`
	Score          int                   `json:"score"`
	TotalQuestions int                   `json:"totalQuestions"`
	TotalXP        int                   `json:"totalXp"`
	Accuracy       float64               `json:"accuracy"`
	NewLevel       int                   `json:"newLevel"`
	NewStreak      int                   `json:"newStreak"`
	Achievements   []string              `json:"achievements"`
	NextDifficulty quiz.Difficulty       `json:"nextDifficulty"`
	WeakDomains    []progress.WeakDomain `json:"weakDomains"`
	Results        []QuestionResult      `json:"results"`
}

// NewResult builds the public result from an outcome and the achievements
// that were actually stored.
func NewResult(o *Outcome, granted []achievements.Achievement) *Result {
	names := make([]string, 0, len(granted))
	for _, a := range granted {
		names = append(names, a.Name)
	}
	results := make([]QuestionResult, 0, len(o.Questions))
	for _, q := range o.Questions {
		results = append(results, QuestionResult{
			QuestionID:    q.ID,
			Submitted:     q.Submitted,
			CorrectAnswer: q.Correct,
			IsCorrect:     q.IsCorrect != nil && *q.IsCorrect,
			XPEarned:      q.XPEarned,
			Explanation:   q.Explanation,
		})
	}
	return &Result{
		QuizID:         o.Quiz.ID,
		Score:          o.Score(),
		TotalQuestions: len(o.Questions),
		TotalXP:        o.QuizXP(),
		Accuracy:       o.Accuracy,
		NewLevel:       o.Profile.Level,
		NewStreak:      o.Profile.CurrentStreak,
		Achievements:   names,
		NextDifficulty: o.Progress.CurrentDifficulty,
		WeakDomains:    o.Progress.WeakDomains,
		Results:        results,
	}
}

// Service evaluates submitted quizzes and persists the outcome.
type Service struct {
	repo   store.ProgressionRepo
	locker lock.Locker
	engine *Engine
	config Config
	log    *logger.Logger
	now    func() time.Time
}

// NewService wires a Service. A nil locker disables per-user locking; a nil
// logger discards logs.
func NewService(repo store.ProgressionRepo, locker lock.Locker, cfg Config, log *logger.Logger) *Service {
	if locker == nil {
		locker = lock.Nop{}
	}
	if log == nil {
		log = logger.Nop()
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &Service{
		repo:   repo,
		locker: locker,
		engine: NewEngine(),
		config: cfg,
		log:    log.With("component", "progression"),
		now:    time.Now,
	}
}

// SetClock overrides the time source.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Evaluate grades quizID with answers and commits every resulting change in
// one transaction. Answers for unknown question ids are ignored.
func (s *Service) Evaluate(ctx context.Context, quizID string, answers map[string]quiz.Answer) (*Result, error) {
	qz, err := s.repo.Quiz(ctx, quizID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	if qz.Graded() {
		return nil, fmt.Errorf("quiz %s: %w", quizID, ErrAlreadyGraded)
	}

	unlock, err := s.locker.Lock(ctx, qz.UserID)
	if err != nil {
		return nil, fmt.Errorf("lock user %s: %w", qz.UserID, err)
	}
	defer unlock()

	log := s.log.With("quiz_id", quizID, "user_id", qz.UserID)

	var lastErr error
	for attempt := range s.config.MaxAttempts {
		res, err := s.attempt(ctx, quizID, answers, log)
		if err == nil {
			log.Info("quiz evaluated",
				"score", res.Score,
				"xp", res.TotalXP,
				"level", res.NewLevel,
				"streak", res.NewStreak,
				"achievements", res.Achievements,
				"attempt", attempt+1)
			return res, nil
		}
		if !errors.Is(err, store.ErrVersionConflict) {
			return nil, mapStoreErr(err)
		}
		lastErr = err
		log.Warn("version conflict, retrying", "attempt", attempt+1, "error", err)

		if attempt == s.config.MaxAttempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.backoff(attempt)):
		}
	}
	return nil, fmt.Errorf("%w: %v", ErrConflict, lastErr)
}

// attempt runs one read-compute-write cycle inside a transaction.
func (s *Service) attempt(ctx context.Context, quizID string, answers map[string]quiz.Answer, log *logger.Logger) (*Result, error) {
	var result *Result
	err := s.repo.RunInTx(ctx, func(tx store.ProgressionTx) error {
		qz, err := tx.Quiz(ctx, quizID)
		if err != nil {
			return err
		}
		if qz.Graded() {
			return fmt.Errorf("quiz %s: %w", quizID, ErrAlreadyGraded)
		}
		questions, err := tx.Questions(ctx, quizID)
		if err != nil {
			return err
		}
		prof, err := tx.Profile(ctx, qz.UserID)
		if err != nil {
			return err
		}
		prog, err := tx.Progress(ctx, qz.UserID, qz.CertificationID)
		if err != nil {
			return err
		}
		held, err := tx.HeldAchievements(ctx, qz.UserID)
		if err != nil {
			return err
		}

		out, err := s.engine.Compute(Input{
			Quiz:      *qz,
			Questions: questions,
			Answers:   answers,
			Profile:   *prof,
			Progress:  *prog,
			Held:      held,
			Now:       s.now(),
		})
		if err != nil {
			return err
		}

		if err := tx.SaveGradedQuestions(ctx, out.Questions); err != nil {
			return err
		}
		if err := tx.CompleteQuiz(ctx, &out.Quiz); err != nil {
			return err
		}
		if err := tx.UpdateProfile(ctx, &out.Profile); err != nil {
			return err
		}
		if err := tx.UpdateProgress(ctx, &out.Progress); err != nil {
			return err
		}

		// Achievements are best effort: a failed insert is logged and the
		// grading still commits.
		granted, err := tx.GrantAchievements(ctx, out.Achievements)
		if err != nil {
			log.Error("granting achievements failed", "error", err)
			granted = nil
		}

		result = NewResult(out, granted)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Service) backoff(attempt int) time.Duration {
	wait := float64(s.config.InitialWait) * math.Pow(2, float64(attempt))
	if s.config.MaxWait > 0 && wait > float64(s.config.MaxWait) {
		wait = float64(s.config.MaxWait)
	}
	// Full jitter between half and the whole wait.
	wait = wait/2 + rand.Float64()*wait/2
	return time.Duration(wait)
}

// mapStoreErr translates store errors into this package's errors.
func mapStoreErr(err error) error {
	switch {
	case errors.Is(err, ErrAlreadyGraded), errors.Is(err, ErrNotFound):
		return err
	case errors.Is(err, store.ErrQuizCompleted):
		return fmt.Errorf("%w: %v", ErrAlreadyGraded, err)
	case errors.Is(err, store.ErrNotFound):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return err
}
