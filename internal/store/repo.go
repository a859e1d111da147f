package store

import (
	"context"
	"time"

	"github.com/abhisek/certprep/internal/achievements"
	"github.com/abhisek/certprep/internal/progress"
	"github.com/abhisek/certprep/internal/quiz"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	Before int64     // id < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// QuizRepo is what quiz generation needs from the store.
type QuizRepo interface {
	// Certification returns the certification with the given id.
	Certification(ctx context.Context, id string) (*quiz.Certification, error)

	// Progress returns the user's progress for a certification.
	Progress(ctx context.Context, userID, certificationID string) (*progress.Progress, error)

	// CreateQuiz stores a new ungraded quiz with its questions and makes
	// sure the user's profile and progress rows exist, in one transaction.
	CreateQuiz(ctx context.Context, q *quiz.Quiz, questions []quiz.Question) error
}

// ProgressionRepo is what quiz evaluation needs from the store.
type ProgressionRepo interface {
	// Quiz returns the quiz with the given id.
	Quiz(ctx context.Context, id string) (*quiz.Quiz, error)

	// RunInTx runs fn in one transaction.
	RunInTx(ctx context.Context, fn func(tx ProgressionTx) error) error
}

// ProgressionTx is the transactional read/write set of one evaluation.
type ProgressionTx interface {
	Quiz(ctx context.Context, id string) (*quiz.Quiz, error)
	Questions(ctx context.Context, quizID string) ([]quiz.Question, error)
	Profile(ctx context.Context, userID string) (*progress.Profile, error)
	Progress(ctx context.Context, userID, certificationID string) (*progress.Progress, error)
	HeldAchievements(ctx context.Context, userID string) (achievements.Held, error)

	// SaveGradedQuestions writes the grading result of each question.
	SaveGradedQuestions(ctx context.Context, questions []quiz.Question) error

	// CompleteQuiz writes score, XP and completion time. It fails with
	// ErrQuizCompleted if the quiz was already completed.
	CompleteQuiz(ctx context.Context, q *quiz.Quiz) error

	// UpdateProfile writes p if the stored version still equals p.Version,
	// then bumps p.Version. It fails with ErrVersionConflict otherwise.
	UpdateProfile(ctx context.Context, p *progress.Profile) error

	// UpdateProgress writes p under the same version rule as UpdateProfile.
	UpdateProgress(ctx context.Context, p *progress.Progress) error

	// GrantAchievements inserts the given achievements inside a savepoint and
	// returns the ones that were newly stored. On error none are stored and
	// the surrounding transaction remains usable.
	GrantAchievements(ctx context.Context, list []achievements.Achievement) ([]achievements.Achievement, error)
}

// ReadRepo serves the read-only views of the API and CLI.
type ReadRepo interface {
	Certifications(ctx context.Context) ([]quiz.Certification, error)
	Quiz(ctx context.Context, id string) (*quiz.Quiz, error)
	Questions(ctx context.Context, quizID string) ([]quiz.Question, error)
	Profile(ctx context.Context, userID string) (*progress.Profile, error)
	ProgressForUser(ctx context.Context, userID string) ([]progress.Progress, error)
	Achievements(ctx context.Context, userID string) ([]achievements.Achievement, error)
	RecentQuizzes(ctx context.Context, userID string, limit int) ([]quiz.Quiz, error)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLM request.
type LLMRequestEvent struct {
	ID        int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMPurposeUsage aggregates usage for one request purpose.
type LLMPurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int
}

// LLMModelUsage aggregates usage for one model.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides access to the LLM request log.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents lists events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns one event by id, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int64) (*LLMRequestEvent, error)

	// LLMUsageByPurpose aggregates token usage grouped by purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMPurposeUsage, error)

	// LLMUsageByModel aggregates token usage grouped by model.
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)
}

var (
	_ QuizRepo        = (*Store)(nil)
	_ ProgressionRepo = (*Store)(nil)
	_ ReadRepo        = (*Store)(nil)
	_ ProgressionTx   = (*progressionTx)(nil)
	_ EventRepo       = (*eventRepo)(nil)
)
