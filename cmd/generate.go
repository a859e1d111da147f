package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/certprep/internal/quiz"
	"github.com/abhisek/certprep/internal/quizgen"
	"github.com/abhisek/certprep/internal/ui/theme"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new quiz for a user",
	Long: "Generate asks the configured LLM for a quiz at the user's current difficulty, " +
		"focused on their weak domains, and stores it ungraded. Answer it with `certprep evaluate`.",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, _ := cmd.Flags().GetString("user")
		certID, _ := cmd.Flags().GetString("cert")
		difficulty, _ := cmd.Flags().GetString("difficulty")

		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		svc, err := e.newGenerator(ctx)
		if err != nil {
			return err
		}

		req := quizgen.Request{
			UserID:          userID,
			CertificationID: certID,
			Difficulty:      quiz.Difficulty(difficulty),
		}
		if cmd.Flags().Changed("domains") {
			req.WeakDomains, _ = cmd.Flags().GetStringSlice("domains")
		}

		out, err := svc.Generate(ctx, req)
		if err != nil {
			return fmt.Errorf("generate quiz: %w", err)
		}
		printQuiz(cmd.OutOrStdout(), out.Quiz, out.Questions)
		return nil
	},
}

func init() {
	generateCmd.Flags().StringP("user", "u", "", "User id (required)")
	generateCmd.Flags().StringP("cert", "c", "aws-clf-c02", "Certification id or exam code")
	generateCmd.Flags().StringP("difficulty", "d", "", "easy, medium or hard (default: the user's current level)")
	generateCmd.Flags().StringSlice("domains", nil, "Focus domains (default: the user's weak domains)")
	_ = generateCmd.MarkFlagRequired("user")
}

// printQuiz renders the questions without their answers.
func printQuiz(w io.Writer, qz *quiz.Quiz, questions []quiz.Question) {
	fmt.Fprintln(w, theme.Title.Render("Quiz "+qz.ID))
	fmt.Fprintln(w, theme.KV("Certification", qz.CertificationID))
	fmt.Fprintln(w, theme.Key("Difficulty")+theme.Difficulty(qz.Difficulty))
	fmt.Fprintln(w, theme.KV("Questions", qz.TotalQuestions))
	fmt.Fprintln(w)

	for _, q := range questions {
		head := fmt.Sprintf("%d. %s", q.Position+1, q.Text)
		fmt.Fprintln(w, theme.Body.Bold(true).Render(head))
		fmt.Fprintln(w, theme.Hint.Render(fmt.Sprintf("   %s · %s · id %s", q.Type.Label(), q.Domain, q.ID)))
		for i, opt := range q.Options {
			fmt.Fprintf(w, "   %c) %s\n", 'A'+i, opt)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, theme.Hint.Render("Submit answers with: certprep evaluate "+qz.ID+" --answers '{\"<question id>\": \"<option text>\"}'"))
}
