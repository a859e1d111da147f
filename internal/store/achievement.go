package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/abhisek/certprep/internal/achievements"
)

var achievementColumns = []string{
	"id", "user_id", "achievement_type", "achievement_name", "achievement_description",
	"quiz_id", "occurrence", "earned_at",
}

// Achievements lists the user's achievements, oldest first.
func (s *Store) Achievements(ctx context.Context, userID string) ([]achievements.Achievement, error) {
	return listAchievements(ctx, s.db, userID)
}

func (t *progressionTx) HeldAchievements(ctx context.Context, userID string) (achievements.Held, error) {
	list, err := listAchievements(ctx, t.q, userID)
	if err != nil {
		return nil, err
	}
	return achievements.HeldFrom(list), nil
}

func (t *progressionTx) GrantAchievements(ctx context.Context, list []achievements.Achievement) ([]achievements.Achievement, error) {
	if len(list) == 0 {
		return nil, nil
	}
	var granted []achievements.Achievement
	err := savepoint(ctx, t.q, "grant_achievements", func() error {
		for _, a := range list {
			if a.ID == "" {
				a.ID = uuid.NewString()
			}
			var quizID any
			if a.QuizID != "" {
				quizID = a.QuizID
			}
			query, args := builder.Insert(tableAchievements).
				Columns(achievementColumns...).
				Values(a.ID, a.UserID, string(a.Type), a.Name, a.Description, quizID, a.Occurrence, a.EarnedAt.UTC()).
				OnConflict(
					entsql.ConflictColumns("user_id", "achievement_type", "achievement_name", "occurrence"),
					entsql.DoNothing(),
				).
				Query()
			res, err := t.q.ExecContext(ctx, query, args...)
			if err != nil {
				return fmt.Errorf("insert achievement %q: %w", a.Name, err)
			}
			n, err := affected(res)
			if err != nil {
				return err
			}
			if n > 0 {
				granted = append(granted, a)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return granted, nil
}

func listAchievements(ctx context.Context, q querier, userID string) ([]achievements.Achievement, error) {
	query, args := builder.Select(achievementColumns...).
		From(builder.Table(tableAchievements)).
		Where(entsql.EQ("user_id", userID)).
		OrderBy("earned_at", "achievement_name").
		Query()
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query achievements: %w", err)
	}
	defer rows.Close()

	var out []achievements.Achievement
	for rows.Next() {
		var (
			a      achievements.Achievement
			typ    string
			quizID *string
		)
		if err := rows.Scan(&a.ID, &a.UserID, &typ, &a.Name, &a.Description, &quizID, &a.Occurrence, &a.EarnedAt); err != nil {
			return nil, fmt.Errorf("scan achievement: %w", err)
		}
		a.Type = achievements.Type(typ)
		if quizID != nil {
			a.QuizID = *quizID
		}
		a.EarnedAt = a.EarnedAt.UTC()
		out = append(out, a)
	}
	return out, rows.Err()
}
