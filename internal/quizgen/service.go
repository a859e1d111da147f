package quizgen

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/certprep/internal/logger"
	"github.com/abhisek/certprep/internal/quiz"
	"github.com/abhisek/certprep/internal/store"
)

var (
	// ErrInvalidRequest is returned for a request that cannot be served.
	ErrInvalidRequest = errors.New("invalid quiz request")

	// ErrUnknownCertification is returned when the certification id or
	// code is not in the catalog.
	ErrUnknownCertification = errors.New("unknown certification")
)

// Config controls quiz size and generation attempts.
type Config struct {
	QuestionCount int
	MaxQuestions  int

	// Attempts is how many model replies are tried when a reply fails
	// validation.
	Attempts int
}

func DefaultConfig() Config {
	return Config{
		QuestionCount: 5,
		MaxQuestions:  10,
		Attempts:      2,
	}
}

// Service turns a Request into a stored quiz.
type Service struct {
	repo   store.QuizRepo
	gen    Generator
	config Config
	log    *logger.Logger
	now    func() time.Time
	newID  func() string
}

func NewService(repo store.QuizRepo, gen Generator, cfg Config, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	if cfg.QuestionCount < 1 {
		cfg.QuestionCount = DefaultConfig().QuestionCount
	}
	if cfg.MaxQuestions < cfg.QuestionCount {
		cfg.MaxQuestions = cfg.QuestionCount
	}
	if cfg.Attempts < 1 {
		cfg.Attempts = 1
	}
	return &Service{
		repo:   repo,
		gen:    gen,
		config: cfg,
		log:    log.With("component", "quizgen"),
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Generate asks the model for questions and stores them as a new
// ungraded quiz. Nothing is stored when the reply is rejected.
func (s *Service) Generate(ctx context.Context, req Request) (*Generated, error) {
	if req.UserID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidRequest)
	}
	if req.CertificationID == "" {
		return nil, fmt.Errorf("%w: certification id is required", ErrInvalidRequest)
	}
	if req.Difficulty != "" && !req.Difficulty.Valid() {
		return nil, fmt.Errorf("%w: unknown difficulty %q", ErrInvalidRequest, req.Difficulty)
	}

	cert, err := s.repo.Certification(ctx, req.CertificationID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCertification, req.CertificationID)
	}
	if err != nil {
		return nil, err
	}

	in, err := s.input(ctx, req, cert)
	if err != nil {
		return nil, err
	}

	log := s.log.With("user_id", req.UserID, "certification_id", cert.ID, "difficulty", in.Difficulty)

	var drafts []Draft
	for attempt := 1; ; attempt++ {
		drafts, err = s.gen.Generate(ctx, in)
		if err == nil {
			break
		}
		var verr *ValidationError
		if !errors.As(err, &verr) || !verr.Retryable || attempt >= s.config.Attempts {
			log.Warn("quiz generation failed", "attempt", attempt, "error", err)
			return nil, err
		}
		log.Info("generated quiz rejected, asking again", "attempt", attempt, "validator", verr.Validator, "reason", verr.Message)
	}

	out := s.build(in, req.UserID, drafts)
	if err := s.repo.CreateQuiz(ctx, out.Quiz, out.Questions); err != nil {
		return nil, fmt.Errorf("store quiz: %w", err)
	}

	log.Info("quiz generated", "quiz_id", out.Quiz.ID, "questions", len(out.Questions), "focus", in.FocusDomains)
	return out, nil
}

func (s *Service) input(ctx context.Context, req Request, cert *quiz.Certification) (Input, error) {
	prog, err := s.repo.Progress(ctx, req.UserID, cert.ID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return Input{}, err
	}

	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = quiz.DifficultyEasy
		if prog != nil && prog.CurrentDifficulty.Valid() {
			difficulty = prog.CurrentDifficulty
		}
	}

	weak := req.WeakDomains
	if weak == nil && prog != nil {
		weak = prog.WeakDomainNames()
	}

	return Input{
		Certification: *cert,
		Difficulty:    difficulty,
		FocusDomains:  FocusDomains(weak),
		Mix:           MixFor(s.config.QuestionCount),
	}, nil
}

func (s *Service) build(in Input, userID string, drafts []Draft) *Generated {
	qz := &quiz.Quiz{
		ID:              s.newID(),
		UserID:          userID,
		CertificationID: in.Certification.ID,
		Difficulty:      in.Difficulty,
		TotalQuestions:  len(drafts),
		CreatedAt:       s.now().UTC(),
	}

	questions := make([]quiz.Question, len(drafts))
	for i, d := range drafts {
		questions[i] = quiz.Question{
			ID:          s.newID(),
			QuizID:      qz.ID,
			Position:    i,
			Text:        d.QuestionText,
			Type:        quiz.QuestionType(d.QuestionType),
			Options:     d.Options,
			Correct:     d.CorrectAnswer,
			Explanation: d.Explanation,
			Difficulty:  quiz.Difficulty(d.Difficulty),
			Domain:      d.Domain,
		}
	}
	return &Generated{Quiz: qz, Questions: questions}
}
