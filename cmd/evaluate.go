package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/certprep/internal/progression"
	"github.com/abhisek/certprep/internal/quiz"
	"github.com/abhisek/certprep/internal/ui/theme"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate <quiz-id>",
	Short: "Grade a quiz and update the user's progression",
	Long: "Evaluate grades the submitted answers, awards XP, updates the streak, " +
		"adapts difficulty and unlocks achievements in one transaction.\n\n" +
		"Answers are a JSON object keyed by question id. Single-choice and true/false " +
		"answers are strings, multi-select answers are arrays of option texts.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		answers, err := readAnswers(cmd)
		if err != nil {
			return err
		}
		asJSON, _ := cmd.Flags().GetBool("json")

		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		locker, closeLocker, err := e.newLocker(ctx)
		if err != nil {
			return err
		}
		defer closeLocker()

		res, err := e.newEvaluator(locker).Evaluate(ctx, args[0], answers)
		if err != nil {
			return fmt.Errorf("evaluate quiz: %w", err)
		}

		w := cmd.OutOrStdout()
		if asJSON {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		}
		printResult(w, res)
		return nil
	},
}

func init() {
	evaluateCmd.Flags().StringP("answers", "a", "", "Answers as a JSON object")
	evaluateCmd.Flags().StringP("file", "f", "", "Read answers JSON from a file (- for stdin)")
	evaluateCmd.Flags().Bool("json", false, "Print the result as JSON")
	evaluateCmd.MarkFlagsOneRequired("answers", "file")
	evaluateCmd.MarkFlagsMutuallyExclusive("answers", "file")
}

func readAnswers(cmd *cobra.Command) (map[string]quiz.Answer, error) {
	inline, _ := cmd.Flags().GetString("answers")
	path, _ := cmd.Flags().GetString("file")

	var r io.Reader
	switch {
	case inline != "":
		r = strings.NewReader(inline)
	case path == "-":
		r = cmd.InOrStdin()
	case path != "":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open answers: %w", err)
		}
		defer f.Close()
		r = f
	default:
		return nil, errors.New("no answers given")
	}

	var answers quiz.Submission
	if err := json.NewDecoder(r).Decode(&answers); err != nil {
		return nil, fmt.Errorf("decode answers: %w", err)
	}
	return answers.Answers(), nil
}

func printResult(w io.Writer, res *progression.Result) {
	fmt.Fprintln(w, theme.Title.Render(fmt.Sprintf("Score %d/%d", res.Score, res.TotalQuestions)))
	fmt.Fprintln(w, theme.Key("Accuracy")+theme.Bar(res.Accuracy, 20))
	fmt.Fprintln(w, theme.KV("XP earned", fmt.Sprintf("+%d", res.TotalXP)))
	fmt.Fprintln(w, theme.KV("Level", res.NewLevel))
	fmt.Fprintln(w, theme.KV("Streak", fmt.Sprintf("%d day(s)", res.NewStreak)))
	fmt.Fprintln(w, theme.Key("Next quiz")+theme.Difficulty(res.NextDifficulty))
	fmt.Fprintln(w)

	for i, r := range res.Results {
		answer := "(no answer)"
		if r.Submitted != nil {
			answer = r.Submitted.String()
		}
		fmt.Fprintf(w, "%s %d. %s\n", theme.Mark(r.IsCorrect), i+1, answer)
		if !r.IsCorrect {
			fmt.Fprintln(w, theme.Hint.Render("     correct: "+r.CorrectAnswer.String()))
		}
		if r.Explanation != "" {
			fmt.Fprintln(w, theme.Subtitle.Render("     "+r.Explanation))
		}
	}

	if len(res.WeakDomains) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, theme.Title.Render("Weak domains"))
		for _, d := range res.WeakDomains {
			fmt.Fprintln(w, theme.Key(d.Name)+theme.Bar(float64(d.Accuracy), 20))
		}
	}
	if len(res.Achievements) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, theme.Title.Render("Achievements unlocked"))
		for _, a := range res.Achievements {
			fmt.Fprintln(w, "  "+theme.Badge.Render("★ "+a))
		}
	}
}
