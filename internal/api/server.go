// Package api exposes quiz generation, evaluation and progress reads
// over HTTP.
package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/certprep/internal/logger"
	"github.com/abhisek/certprep/internal/progression"
	"github.com/abhisek/certprep/internal/quiz"
	"github.com/abhisek/certprep/internal/quizgen"
	"github.com/abhisek/certprep/internal/store"
)

// QuizGenerator creates quizzes.
type QuizGenerator interface {
	Generate(ctx context.Context, req quizgen.Request) (*quizgen.Generated, error)
}

// Evaluator grades quizzes.
type Evaluator interface {
	Evaluate(ctx context.Context, quizID string, answers map[string]quiz.Answer) (*progression.Result, error)
}

type Config struct {
	Log         *logger.Logger
	Generator   QuizGenerator
	Evaluator   Evaluator
	Reader      store.ReadRepo
	CORSOrigins []string
}

// Server holds the handlers' dependencies.
type Server struct {
	log       *logger.Logger
	generator QuizGenerator
	evaluator Evaluator
	reader    store.ReadRepo
}

// NewRouter builds the gin engine with all routes.
func NewRouter(cfg Config) *gin.Engine {
	log := cfg.Log
	if log == nil {
		log = logger.Nop()
	}
	s := &Server{
		log:       log.With("component", "api"),
		generator: cfg.Generator,
		evaluator: cfg.Evaluator,
		reader:    cfg.Reader,
	}

	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), RequestLogger(s.log), CORS(cfg.CORSOrigins))

	router.GET("/healthcheck", HealthCheck)

	api := router.Group("/api")
	{
		api.GET("/certifications", s.ListCertifications)

		api.POST("/quizzes", s.CreateQuiz)
		api.GET("/quizzes/:id", s.GetQuiz)
		api.POST("/quizzes/:id/evaluate", s.EvaluateQuiz)

		api.GET("/users/:id/profile", s.GetProfile)
		api.GET("/users/:id/progress", s.GetProgress)
		api.GET("/users/:id/achievements", s.ListAchievements)
		api.GET("/users/:id/quizzes", s.ListQuizzes)
	}

	router.NoRoute(func(c *gin.Context) {
		RespondError(c, http.StatusNotFound, CodeNotFound, errNoRoute)
	})

	return router
}
