package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/certprep/internal/quiz"
	"github.com/abhisek/certprep/internal/store"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("CERTPREP_LOG_MODE", "prod")
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func seedQuiz(t *testing.T, dbPath string) []quiz.Question {
	t.Helper()
	s, err := store.Open(dbPath)
	require.NoError(t, err)
	defer s.Close()

	q := &quiz.Quiz{
		ID:              "quiz-1",
		UserID:          "u1",
		CertificationID: "aws-clf-c02",
		Difficulty:      quiz.DifficultyMedium,
		TotalQuestions:  2,
		CreatedAt:       time.Now().UTC(),
	}
	qs := []quiz.Question{
		{
			ID: "q1", QuizID: q.ID, Position: 0,
			Text: "Which service stores objects?", Type: quiz.SingleChoice,
			Options: []string{"Amazon S3", "Amazon EC2"}, Correct: quiz.Single("Amazon S3"),
			Explanation: "S3 is object storage.", Difficulty: quiz.DifficultyMedium, Domain: "S3",
		},
		{
			ID: "q2", QuizID: q.ID, Position: 1,
			Text: "Pick the compute services.", Type: quiz.MultiSelect,
			Options: []string{"EC2", "Lambda", "S3"}, Correct: quiz.Multiple("EC2", "Lambda"),
			Explanation: "EC2 and Lambda run code.", Difficulty: quiz.DifficultyMedium, Domain: "EC2",
		},
	}
	require.NoError(t, s.CreateQuiz(context.Background(), q, qs))
	return qs
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "certprep (devel)\n", out)
}

func TestEvaluateAndStats(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")
	seedQuiz(t, db)

	out, err := run(t, "evaluate", "quiz-1", "--db", db, "--json",
		"--answers", `{"q1": "Amazon S3", "q2": ["Lambda", "EC2"]}`)
	require.NoError(t, err)

	var res struct {
		Score          int    `json:"score"`
		TotalXP        int    `json:"totalXp"`
		NextDifficulty string `json:"nextDifficulty"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res), out)
	assert.Equal(t, 2, res.Score)
	assert.Equal(t, 20, res.TotalXP)
	assert.Equal(t, "hard", res.NextDifficulty)

	_, err = run(t, "evaluate", "quiz-1", "--db", db, "--json=false", "--answers", `{}`)
	assert.Error(t, err)

	out, err = run(t, "stats", "--db", db, "--user", "u1")
	require.NoError(t, err)
	assert.Contains(t, out, "aws-clf-c02")
	assert.Contains(t, out, "2/2")
}

func TestStatsUnknownUser(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")
	out, err := run(t, "stats", "--db", db, "--user", "ghost")
	require.NoError(t, err)
	assert.Contains(t, out, "No quizzes completed by ghost")
}

func TestReadAnswers(t *testing.T) {
	newCmd := func() *cobra.Command {
		c := &cobra.Command{}
		c.Flags().String("answers", "", "")
		c.Flags().String("file", "", "")
		return c
	}

	t.Run("inline", func(t *testing.T) {
		c := newCmd()
		require.NoError(t, c.Flags().Set("answers", `{"a": "x", "b": ["y", "z"]}`))
		got, err := readAnswers(c)
		require.NoError(t, err)
		assert.Equal(t, "x", got["a"].Value())
		assert.True(t, got["b"].IsMultiple())
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "answers.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"a": "x"}`), 0o600))
		c := newCmd()
		require.NoError(t, c.Flags().Set("file", path))
		got, err := readAnswers(c)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("stdin", func(t *testing.T) {
		c := newCmd()
		c.SetIn(strings.NewReader(`{"a": ["x"]}`))
		require.NoError(t, c.Flags().Set("file", "-"))
		got, err := readAnswers(c)
		require.NoError(t, err)
		assert.True(t, got["a"].IsMultiple())
	})

	t.Run("null is unanswered", func(t *testing.T) {
		c := newCmd()
		require.NoError(t, c.Flags().Set("answers", `{"a": "x", "b": null}`))
		got, err := readAnswers(c)
		require.NoError(t, err)
		assert.Len(t, got, 1)
		assert.NotContains(t, got, "b")
	})

	t.Run("invalid", func(t *testing.T) {
		c := newCmd()
		require.NoError(t, c.Flags().Set("answers", `{"a": 1}`))
		_, err := readAnswers(c)
		assert.Error(t, err)
	})
}
