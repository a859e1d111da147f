package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/certprep/internal/progress"
	"github.com/abhisek/certprep/internal/quiz"
)

var quizColumns = []string{
	"id", "user_id", "certification_id", "difficulty", "total_questions",
	"score", "xp_earned", "created_at", "completed_at",
}

var questionColumns = []string{
	"id", "quiz_id", "position", "question_text", "question_type", "options",
	"correct_answer", "explanation", "difficulty", "domain", "user_answer",
	"is_correct", "xp_earned",
}

// CreateQuiz stores a new quiz shell and its questions. The owning profile
// and the progress row for the certification are created when missing.
func (s *Store) CreateQuiz(ctx context.Context, q *quiz.Quiz, questions []quiz.Question) error {
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now().UTC()
	}
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := ensureProfile(ctx, tx, progress.NewProfile(q.UserID, q.CreatedAt)); err != nil {
			return err
		}
		if err := ensureProgress(ctx, tx, progress.NewProgress(q.UserID, q.CertificationID, q.Difficulty, q.CreatedAt)); err != nil {
			return err
		}

		query, args := builder.Insert(tableQuizzes).
			Columns("id", "user_id", "certification_id", "difficulty", "total_questions", "created_at").
			Values(q.ID, q.UserID, q.CertificationID, string(q.Difficulty), q.TotalQuestions, q.CreatedAt.UTC()).
			Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert quiz: %w", err)
		}

		for _, qq := range questions {
			if err := insertQuestion(ctx, tx, qq); err != nil {
				return err
			}
		}
		return nil
	})
}

func insertQuestion(ctx context.Context, q querier, qq quiz.Question) error {
	opts, err := json.Marshal(qq.Options)
	if err != nil {
		return fmt.Errorf("encode options: %w", err)
	}
	correct, err := json.Marshal(qq.Correct)
	if err != nil {
		return fmt.Errorf("encode correct answer: %w", err)
	}
	query, args := builder.Insert(tableQuestions).
		Columns("id", "quiz_id", "position", "question_text", "question_type", "options",
			"correct_answer", "explanation", "difficulty", "domain", "xp_earned").
		Values(qq.ID, qq.QuizID, qq.Position, qq.Text, string(qq.Type), string(opts),
			string(correct), qq.Explanation, string(qq.Difficulty), qq.Domain, 0).
		Query()
	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert question %s: %w", qq.ID, err)
	}
	return nil
}

// Quiz returns the quiz with the given id.
func (s *Store) Quiz(ctx context.Context, id string) (*quiz.Quiz, error) {
	return getQuiz(ctx, s.db, id)
}

// Questions returns the quiz's questions in position order.
func (s *Store) Questions(ctx context.Context, quizID string) ([]quiz.Question, error) {
	return getQuestions(ctx, s.db, quizID)
}

// RecentQuizzes lists the user's quizzes, newest first.
func (s *Store) RecentQuizzes(ctx context.Context, userID string, limit int) ([]quiz.Quiz, error) {
	sel := builder.Select(quizColumns...).
		From(builder.Table(tableQuizzes)).
		Where(entsql.EQ("user_id", userID)).
		OrderBy(entsql.Desc("created_at"))
	if limit > 0 {
		sel.Limit(limit)
	}
	query, args := sel.Query()
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query quizzes: %w", err)
	}
	defer rows.Close()

	var out []quiz.Quiz
	for rows.Next() {
		q, err := scanQuiz(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *q)
	}
	return out, rows.Err()
}

func (t *progressionTx) Quiz(ctx context.Context, id string) (*quiz.Quiz, error) {
	return getQuiz(ctx, t.q, id)
}

func (t *progressionTx) Questions(ctx context.Context, quizID string) ([]quiz.Question, error) {
	return getQuestions(ctx, t.q, quizID)
}

func (t *progressionTx) SaveGradedQuestions(ctx context.Context, questions []quiz.Question) error {
	for _, qq := range questions {
		if qq.IsCorrect == nil {
			return fmt.Errorf("question %s is not graded", qq.ID)
		}
		upd := builder.Update(tableQuestions).
			Set("is_correct", *qq.IsCorrect).
			Set("xp_earned", qq.XPEarned).
			Where(entsql.And(entsql.EQ("id", qq.ID), entsql.IsNull("is_correct")))
		if qq.Submitted != nil {
			b, err := json.Marshal(*qq.Submitted)
			if err != nil {
				return fmt.Errorf("encode answer: %w", err)
			}
			upd.Set("user_answer", string(b))
		} else {
			upd.SetNull("user_answer")
		}
		query, args := upd.Query()
		res, err := t.q.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("update question %s: %w", qq.ID, err)
		}
		n, err := affected(res)
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("question %s: %w", qq.ID, ErrQuizCompleted)
		}
	}
	return nil
}

func (t *progressionTx) CompleteQuiz(ctx context.Context, q *quiz.Quiz) error {
	if q.Score == nil || q.XPEarned == nil || q.CompletedAt == nil {
		return fmt.Errorf("quiz %s has no grading result", q.ID)
	}
	query, args := builder.Update(tableQuizzes).
		Set("score", *q.Score).
		Set("xp_earned", *q.XPEarned).
		Set("completed_at", q.CompletedAt.UTC()).
		Where(entsql.And(entsql.EQ("id", q.ID), entsql.IsNull("completed_at"))).
		Query()
	res, err := t.q.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("complete quiz: %w", err)
	}
	n, err := affected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("quiz %s: %w", q.ID, ErrQuizCompleted)
	}
	return nil
}

func getQuiz(ctx context.Context, q querier, id string) (*quiz.Quiz, error) {
	query, args := builder.Select(quizColumns...).
		From(builder.Table(tableQuizzes)).
		Where(entsql.EQ("id", id)).
		Query()
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query quiz: %w", err)
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("query quiz: %w", err)
		}
		return nil, fmt.Errorf("quiz %q: %w", id, ErrNotFound)
	}
	return scanQuiz(rows)
}

func scanQuiz(rows *sql.Rows) (*quiz.Quiz, error) {
	var (
		qz          quiz.Quiz
		difficulty  string
		score, xp   sql.NullInt64
		completedAt sql.NullTime
	)
	if err := rows.Scan(&qz.ID, &qz.UserID, &qz.CertificationID, &difficulty, &qz.TotalQuestions,
		&score, &xp, &qz.CreatedAt, &completedAt); err != nil {
		return nil, fmt.Errorf("scan quiz: %w", err)
	}
	qz.Difficulty = quiz.Difficulty(difficulty)
	if score.Valid {
		v := int(score.Int64)
		qz.Score = &v
	}
	if xp.Valid {
		v := int(xp.Int64)
		qz.XPEarned = &v
	}
	if completedAt.Valid {
		t := completedAt.Time.UTC()
		qz.CompletedAt = &t
	}
	qz.CreatedAt = qz.CreatedAt.UTC()
	return &qz, nil
}

func getQuestions(ctx context.Context, q querier, quizID string) ([]quiz.Question, error) {
	query, args := builder.Select(questionColumns...).
		From(builder.Table(tableQuestions)).
		Where(entsql.EQ("quiz_id", quizID)).
		OrderBy("position").
		Query()
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	var out []quiz.Question
	for rows.Next() {
		var (
			qq                    quiz.Question
			typ, difficulty       string
			opts, correct, answer []byte
			isCorrect             sql.NullBool
		)
		if err := rows.Scan(&qq.ID, &qq.QuizID, &qq.Position, &qq.Text, &typ, &opts,
			&correct, &qq.Explanation, &difficulty, &qq.Domain, &answer,
			&isCorrect, &qq.XPEarned); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		qq.Type = quiz.QuestionType(typ)
		qq.Difficulty = quiz.Difficulty(difficulty)
		if err := json.Unmarshal(opts, &qq.Options); err != nil {
			return nil, fmt.Errorf("decode options of %s: %w", qq.ID, err)
		}
		if err := json.Unmarshal(correct, &qq.Correct); err != nil {
			return nil, fmt.Errorf("decode correct answer of %s: %w", qq.ID, err)
		}
		if len(answer) > 0 {
			var a quiz.Answer
			if err := json.Unmarshal(answer, &a); err != nil {
				return nil, fmt.Errorf("decode user answer of %s: %w", qq.ID, err)
			}
			qq.Submitted = &a
		}
		if isCorrect.Valid {
			v := isCorrect.Bool
			qq.IsCorrect = &v
		}
		out = append(out, qq)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// errNoRows maps sql.ErrNoRows to ErrNotFound.
func errNoRows(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return fmt.Errorf("query %s: %w", what, err)
}
