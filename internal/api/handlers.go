package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/certprep/internal/quiz"
	"github.com/abhisek/certprep/internal/quizgen"
)

var errNoRoute = errors.New("route not found")

func HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// GET /api/certifications
func (s *Server) ListCertifications(c *gin.Context) {
	certs, err := s.reader.Certifications(c.Request.Context())
	if err != nil {
		s.respondErr(c, err)
		return
	}
	RespondOK(c, gin.H{"certifications": certs})
}

type createQuizRequest struct {
	UserID          string   `json:"userId" binding:"required"`
	CertificationID string   `json:"certificationId" binding:"required"`
	Difficulty      string   `json:"difficulty"`
	WeakDomains     []string `json:"weakDomains"`
}

// POST /api/quizzes
func (s *Server) CreateQuiz(c *gin.Context) {
	var req createQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondErr(c, fmt.Errorf("%w: %v", errInvalidArgument, err))
		return
	}

	out, err := s.generator.Generate(c.Request.Context(), quizgen.Request{
		UserID:          req.UserID,
		CertificationID: req.CertificationID,
		Difficulty:      quiz.Difficulty(req.Difficulty),
		WeakDomains:     req.WeakDomains,
	})
	if err != nil {
		s.respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, newQuizView(out.Quiz, out.Questions))
}

// GET /api/quizzes/:id
func (s *Server) GetQuiz(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	qz, err := s.reader.Quiz(ctx, id)
	if err != nil {
		s.respondErr(c, err)
		return
	}
	questions, err := s.reader.Questions(ctx, id)
	if err != nil {
		s.respondErr(c, err)
		return
	}
	RespondOK(c, newQuizView(qz, questions))
}

type evaluateRequest struct {
	Answers quiz.Submission `json:"answers" binding:"required"`
}

// POST /api/quizzes/:id/evaluate
func (s *Server) EvaluateQuiz(c *gin.Context) {
	var req evaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondErr(c, fmt.Errorf("%w: %v", errInvalidArgument, err))
		return
	}

	res, err := s.evaluator.Evaluate(c.Request.Context(), c.Param("id"), req.Answers.Answers())
	if err != nil {
		s.respondErr(c, err)
		return
	}
	RespondOK(c, res)
}

// GET /api/users/:id/profile
func (s *Server) GetProfile(c *gin.Context) {
	p, err := s.reader.Profile(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondErr(c, err)
		return
	}
	RespondOK(c, p)
}

// GET /api/users/:id/progress
func (s *Server) GetProgress(c *gin.Context) {
	list, err := s.reader.ProgressForUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondErr(c, err)
		return
	}
	RespondOK(c, gin.H{"progress": list})
}

// GET /api/users/:id/achievements
func (s *Server) ListAchievements(c *gin.Context) {
	list, err := s.reader.Achievements(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondErr(c, err)
		return
	}
	RespondOK(c, gin.H{"achievements": list})
}

// GET /api/users/:id/quizzes?limit=n
func (s *Server) ListQuizzes(c *gin.Context) {
	limit := 20
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 100 {
			s.respondErr(c, fmt.Errorf("%w: limit must be between 1 and 100", errInvalidArgument))
			return
		}
		limit = n
	}

	list, err := s.reader.RecentQuizzes(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		s.respondErr(c, err)
		return
	}
	RespondOK(c, gin.H{"quizzes": list})
}

// questionView hides the answer key of ungraded quizzes.
type questionView struct {
	ID          string            `json:"id"`
	Position    int               `json:"position"`
	Text        string            `json:"text"`
	Type        quiz.QuestionType `json:"type"`
	Options     []string          `json:"options"`
	Difficulty  quiz.Difficulty   `json:"difficulty"`
	Domain      string            `json:"domain"`
	Correct     *quiz.Answer      `json:"correctAnswer,omitempty"`
	Explanation string            `json:"explanation,omitempty"`
	Submitted   *quiz.Answer      `json:"userAnswer,omitempty"`
	IsCorrect   *bool             `json:"isCorrect,omitempty"`
	XPEarned    *int              `json:"xpEarned,omitempty"`
}

type quizView struct {
	*quiz.Quiz
	Questions []questionView `json:"questions"`
}

func newQuizView(qz *quiz.Quiz, questions []quiz.Question) quizView {
	graded := qz.Graded()
	views := make([]questionView, 0, len(questions))
	for _, q := range questions {
		v := questionView{
			ID:         q.ID,
			Position:   q.Position,
			Text:       q.Text,
			Type:       q.Type,
			Options:    q.Options,
			Difficulty: q.Difficulty,
			Domain:     q.Domain,
		}
		if graded {
			correct, xp := q.Correct, q.XPEarned
			v.Correct = &correct
			v.Explanation = q.Explanation
			v.Submitted = q.Submitted
			v.IsCorrect = q.IsCorrect
			v.XPEarned = &xp
		}
		views = append(views, v)
	}
	return quizView{Quiz: qz, Questions: views}
}
