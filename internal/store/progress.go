package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/abhisek/certprep/internal/progress"
	"github.com/abhisek/certprep/internal/quiz"
)

var progressColumns = []string{
	"user_id", "certification_id", "total_xp", "total_quizzes", "total_questions_answered",
	"correct_answers", "accuracy", "current_difficulty", "weak_domains", "version", "updated_at",
}

// Progress returns the user's progress for a certification.
func (s *Store) Progress(ctx context.Context, userID, certificationID string) (*progress.Progress, error) {
	return getProgress(ctx, s.db, userID, certificationID)
}

// ProgressForUser lists the user's progress across certifications.
func (s *Store) ProgressForUser(ctx context.Context, userID string) ([]progress.Progress, error) {
	query, args := builder.Select(progressColumns...).
		From(builder.Table(tableProgress)).
		Where(entsql.EQ("user_id", userID)).
		OrderBy("certification_id").
		Query()
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query progress: %w", err)
	}
	defer rows.Close()

	var out []progress.Progress
	for rows.Next() {
		p, err := scanProgress(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (t *progressionTx) Progress(ctx context.Context, userID, certificationID string) (*progress.Progress, error) {
	return getProgress(ctx, t.q, userID, certificationID)
}

func (t *progressionTx) UpdateProgress(ctx context.Context, p *progress.Progress) error {
	weak, err := encodeWeakDomains(p.WeakDomains)
	if err != nil {
		return err
	}
	query, args := builder.Update(tableProgress).
		Set("total_xp", p.TotalXP).
		Set("total_quizzes", p.QuizzesCompleted).
		Set("total_questions_answered", p.QuestionsAnswered).
		Set("correct_answers", p.CorrectAnswers).
		Set("accuracy", p.Accuracy).
		Set("current_difficulty", string(p.CurrentDifficulty)).
		Set("weak_domains", weak).
		Set("updated_at", p.UpdatedAt.UTC()).
		Add("version", 1).
		Where(entsql.And(
			entsql.EQ("user_id", p.UserID),
			entsql.EQ("certification_id", p.CertificationID),
			entsql.EQ("version", p.Version),
		)).
		Query()
	res, err := t.q.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update progress: %w", err)
	}
	n, err := affected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("progress %s/%s at version %d: %w", p.UserID, p.CertificationID, p.Version, ErrVersionConflict)
	}
	p.Version++
	return nil
}

func ensureProgress(ctx context.Context, q querier, p progress.Progress) error {
	weak, err := encodeWeakDomains(p.WeakDomains)
	if err != nil {
		return err
	}
	query, args := builder.Insert(tableProgress).
		Columns("id", "user_id", "certification_id", "current_difficulty", "weak_domains", "version", "updated_at").
		Values(uuid.NewString(), p.UserID, p.CertificationID, string(p.CurrentDifficulty), weak, p.Version, p.UpdatedAt.UTC()).
		OnConflict(entsql.ConflictColumns("user_id", "certification_id"), entsql.DoNothing()).
		Query()
	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("ensure progress: %w", err)
	}
	return nil
}

func getProgress(ctx context.Context, q querier, userID, certificationID string) (*progress.Progress, error) {
	query, args := builder.Select(progressColumns...).
		From(builder.Table(tableProgress)).
		Where(entsql.And(entsql.EQ("user_id", userID), entsql.EQ("certification_id", certificationID))).
		Query()
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query progress: %w", err)
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("query progress: %w", err)
		}
		return nil, fmt.Errorf("progress %s/%s: %w", userID, certificationID, ErrNotFound)
	}
	return scanProgress(rows)
}

func scanProgress(rows *sql.Rows) (*progress.Progress, error) {
	var (
		p          progress.Progress
		difficulty string
		weak       []byte
	)
	if err := rows.Scan(&p.UserID, &p.CertificationID, &p.TotalXP, &p.QuizzesCompleted,
		&p.QuestionsAnswered, &p.CorrectAnswers, &p.Accuracy, &difficulty, &weak,
		&p.Version, &p.UpdatedAt); err != nil {
		return nil, fmt.Errorf("scan progress: %w", err)
	}
	p.CurrentDifficulty = quiz.Difficulty(difficulty)
	p.WeakDomains = []progress.WeakDomain{}
	if len(weak) > 0 {
		if err := json.Unmarshal(weak, &p.WeakDomains); err != nil {
			return nil, fmt.Errorf("decode weak domains: %w", err)
		}
	}
	p.UpdatedAt = p.UpdatedAt.UTC()
	return &p, nil
}

func encodeWeakDomains(list []progress.WeakDomain) (string, error) {
	if list == nil {
		list = []progress.WeakDomain{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return "", fmt.Errorf("encode weak domains: %w", err)
	}
	return string(b), nil
}
