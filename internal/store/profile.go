package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/certprep/internal/progress"
)

var profileColumns = []string{
	"id", "display_name", "xp", "level", "current_streak", "best_streak",
	"last_quiz_date", "version", "created_at", "updated_at",
}

// Profile returns the user's profile.
func (s *Store) Profile(ctx context.Context, userID string) (*progress.Profile, error) {
	return getProfile(ctx, s.db, userID)
}

// EnsureProfile creates the profile if it does not exist and returns it.
func (s *Store) EnsureProfile(ctx context.Context, userID, displayName string) (*progress.Profile, error) {
	p := progress.NewProfile(userID, time.Now().UTC())
	p.DisplayName = displayName
	if err := ensureProfile(ctx, s.db, p); err != nil {
		return nil, err
	}
	return getProfile(ctx, s.db, userID)
}

func (t *progressionTx) Profile(ctx context.Context, userID string) (*progress.Profile, error) {
	return getProfile(ctx, t.q, userID)
}

func (t *progressionTx) UpdateProfile(ctx context.Context, p *progress.Profile) error {
	var lastDay any
	if p.LastQuizDate != nil {
		lastDay = p.LastQuizDate.String()
	}
	upd := builder.Update(tableProfiles).
		Set("xp", p.XP).
		Set("level", p.Level).
		Set("current_streak", p.CurrentStreak).
		Set("best_streak", p.BestStreak).
		Set("updated_at", p.UpdatedAt.UTC()).
		Add("version", 1).
		Where(entsql.And(entsql.EQ("id", p.UserID), entsql.EQ("version", p.Version)))
	if lastDay != nil {
		upd.Set("last_quiz_date", lastDay)
	} else {
		upd.SetNull("last_quiz_date")
	}
	query, args := upd.Query()
	res, err := t.q.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	n, err := affected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("profile %s at version %d: %w", p.UserID, p.Version, ErrVersionConflict)
	}
	p.Version++
	return nil
}

func ensureProfile(ctx context.Context, q querier, p progress.Profile) error {
	query, args := builder.Insert(tableProfiles).
		Columns("id", "display_name", "xp", "level", "current_streak", "best_streak", "version", "created_at", "updated_at").
		Values(p.UserID, p.DisplayName, p.XP, p.Level, p.CurrentStreak, p.BestStreak, p.Version, p.CreatedAt.UTC(), p.UpdatedAt.UTC()).
		OnConflict(entsql.ConflictColumns("id"), entsql.DoNothing()).
		Query()
	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("ensure profile: %w", err)
	}
	return nil
}

func getProfile(ctx context.Context, q querier, userID string) (*progress.Profile, error) {
	query, args := builder.Select(profileColumns...).
		From(builder.Table(tableProfiles)).
		Where(entsql.EQ("id", userID)).
		Query()
	var (
		p       progress.Profile
		lastDay sql.NullString
	)
	err := q.QueryRowContext(ctx, query, args...).Scan(&p.UserID, &p.DisplayName, &p.XP, &p.Level,
		&p.CurrentStreak, &p.BestStreak, &lastDay, &p.Version, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, errNoRows(err, fmt.Sprintf("profile %q", userID))
	}
	if lastDay.Valid && lastDay.String != "" {
		d, err := progress.ParseDay(lastDay.String)
		if err != nil {
			return nil, err
		}
		p.LastQuizDate = &d
	}
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return &p, nil
}
