package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/certprep/internal/progress"
	"github.com/abhisek/certprep/internal/store"
	"github.com/abhisek/certprep/internal/ui/theme"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show a user's progression",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, _ := cmd.Flags().GetString("user")
		recent, _ := cmd.Flags().GetInt("recent")

		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		w := cmd.OutOrStdout()

		prof, err := e.store.Profile(ctx, userID)
		if errors.Is(err, store.ErrNotFound) {
			fmt.Fprintf(w, "No quizzes completed by %s yet.\n", userID)
			return nil
		}
		if err != nil {
			return fmt.Errorf("load profile: %w", err)
		}
		printProfile(w, prof)

		list, err := e.store.ProgressForUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("load progress: %w", err)
		}
		for _, p := range list {
			fmt.Fprintln(w)
			printProgress(w, p)
		}

		earned, err := e.store.Achievements(ctx, userID)
		if err != nil {
			return fmt.Errorf("load achievements: %w", err)
		}
		if len(earned) > 0 {
			fmt.Fprintln(w)
			fmt.Fprintln(w, theme.Title.Render("Achievements"))
			for _, a := range earned {
				fmt.Fprintf(w, "  %s  %s %s\n",
					theme.Badge.Render("★ "+a.Name),
					theme.Subtitle.Render(a.Description),
					theme.Hint.Render(a.EarnedAt.Local().Format("2006-01-02")))
			}
		}

		quizzes, err := e.store.RecentQuizzes(ctx, userID, recent)
		if err != nil {
			return fmt.Errorf("load quizzes: %w", err)
		}
		if len(quizzes) > 0 {
			fmt.Fprintln(w)
			fmt.Fprintln(w, theme.Title.Render("Recent quizzes"))
			for _, q := range quizzes {
				result := theme.Hint.Render("not graded")
				if q.Score != nil {
					result = fmt.Sprintf("%d/%d", *q.Score, q.TotalQuestions)
				}
				fmt.Fprintf(w, "  %s  %-12s %s  %s\n",
					q.CreatedAt.Local().Format("2006-01-02 15:04"),
					q.CertificationID, theme.Difficulty(q.Difficulty), result)
			}
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().StringP("user", "u", "", "User id (required)")
	statsCmd.Flags().IntP("recent", "n", 5, "Number of recent quizzes to show")
	_ = statsCmd.MarkFlagRequired("user")
}

func printProfile(w io.Writer, p *progress.Profile) {
	var b strings.Builder
	fmt.Fprintln(&b, theme.Title.Render(p.UserID))
	fmt.Fprintln(&b, theme.KV("Level", p.Level))
	fmt.Fprintln(&b, theme.KV("XP", fmt.Sprintf("%d (%d to next level)", p.XP, progress.XPToNextLevel(p.XP))))
	fmt.Fprintln(&b, theme.KV("Streak", fmt.Sprintf("%d day(s), best %d", p.CurrentStreak, p.BestStreak)))
	fmt.Fprint(&b, theme.KV("Last quiz", p.LastQuizDay()))
	fmt.Fprintln(w, theme.Card.Render(b.String()))
}

func printProgress(w io.Writer, p progress.Progress) {
	fmt.Fprintln(w, theme.Title.Render(p.CertificationID))
	fmt.Fprintln(w, theme.Key("Accuracy")+theme.Bar(p.Accuracy, 20))
	fmt.Fprintln(w, theme.KV("Quizzes", p.QuizzesCompleted))
	fmt.Fprintln(w, theme.KV("Answered", fmt.Sprintf("%d (%d correct)", p.QuestionsAnswered, p.CorrectAnswers)))
	fmt.Fprintln(w, theme.KV("XP", p.TotalXP))
	fmt.Fprintln(w, theme.Key("Difficulty")+theme.Difficulty(p.CurrentDifficulty))
	if names := p.WeakDomainNames(); len(names) > 0 {
		fmt.Fprintln(w, theme.KV("Weak domains", strings.Join(names, ", ")))
	}
}
