package progression

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/abhisek/certprep/internal/achievements"
	"github.com/abhisek/certprep/internal/progress"
	"github.com/abhisek/certprep/internal/quiz"
)

var evalTime = time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)

// easyQuiz returns a five-question quiz covering every question type.
func easyQuiz(id string, d quiz.Difficulty) (quiz.Quiz, []quiz.Question) {
	qz := quiz.Quiz{ID: id, UserID: "user-1", CertificationID: "aws-clf-c02", Difficulty: d, TotalQuestions: 5}
	qs := []quiz.Question{
		{ID: id + "-1", Type: quiz.SingleChoice, Options: []string{"IAM role", "Access key"}, Correct: quiz.Single("IAM role"), Difficulty: d, Domain: "IAM"},
		{ID: id + "-2", Type: quiz.MultiSelect, Options: []string{"MFA", "Root keys", "Least privilege"}, Correct: quiz.Multiple("MFA", "Least privilege"), Difficulty: d, Domain: "IAM"},
		{ID: id + "-3", Type: quiz.SingleChoice, Options: []string{"S3 Standard", "S3 Glacier"}, Correct: quiz.Single("S3 Glacier"), Difficulty: d, Domain: "S3"},
		{ID: id + "-4", Type: quiz.TrueFalse, Options: []string{"True", "False"}, Correct: quiz.Single("True"), Difficulty: d, Domain: "S3"},
		{ID: id + "-5", Type: quiz.SingleChoice, Options: []string{"NAT gateway", "Internet gateway"}, Correct: quiz.Single("NAT gateway"), Difficulty: d, Domain: "VPC"},
	}
	return qz, qs
}

func allCorrect(qs []quiz.Question) map[string]quiz.Answer {
	answers := make(map[string]quiz.Answer, len(qs))
	for _, q := range qs {
		answers[q.ID] = q.Correct
	}
	return answers
}

func freshInput(qz quiz.Quiz, qs []quiz.Question, answers map[string]quiz.Answer) Input {
	return Input{
		Quiz:      qz,
		Questions: qs,
		Answers:   answers,
		Profile:   progress.NewProfile("user-1", evalTime),
		Progress:  progress.NewProgress("user-1", qz.CertificationID, qz.Difficulty, evalTime),
		Held:      achievements.Held{},
		Now:       evalTime,
	}
}

func TestComputeFirstEasyQuiz(t *testing.T) {
	qz, qs := easyQuiz("q", quiz.DifficultyEasy)
	answers := map[string]quiz.Answer{
		"q-1": quiz.Single("IAM role"),
		"q-2": quiz.Multiple("Least privilege", "MFA"),
		"q-3": quiz.Single("S3 Glacier"),
		"q-4": quiz.Single("True"),
		"q-5": quiz.Single("Internet gateway"),
	}

	out, err := NewEngine().Compute(freshInput(qz, qs, answers))
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	if out.Score() != 4 {
		t.Errorf("score = %d, want 4", out.Score())
	}
	if out.QuizXP() != 20 {
		t.Errorf("quiz xp = %d, want 20", out.QuizXP())
	}
	if out.Accuracy != 80 {
		t.Errorf("accuracy = %v, want 80", out.Accuracy)
	}
	if out.Profile.XP != 20 || out.Profile.Level != 1 {
		t.Errorf("profile xp/level = %d/%d, want 20/1", out.Profile.XP, out.Profile.Level)
	}
	if out.Profile.CurrentStreak != 1 || out.Profile.BestStreak != 1 {
		t.Errorf("streak = %d (best %d), want 1", out.Profile.CurrentStreak, out.Profile.BestStreak)
	}
	if out.Profile.LastQuizDay() != "2024-03-10" {
		t.Errorf("last quiz day = %q", out.Profile.LastQuizDay())
	}
	if out.Progress.CurrentDifficulty != quiz.DifficultyMedium {
		t.Errorf("next difficulty = %s, want medium", out.Progress.CurrentDifficulty)
	}
	if len(out.Progress.WeakDomains) != 1 || out.Progress.WeakDomains[0] != (progress.WeakDomain{Name: "VPC", Accuracy: 0}) {
		t.Errorf("weak domains = %+v, want [VPC 0]", out.Progress.WeakDomains)
	}
	if out.Progress.QuizzesCompleted != 1 || out.Progress.QuestionsAnswered != 5 || out.Progress.CorrectAnswers != 4 {
		t.Errorf("progress totals = %+v", out.Progress)
	}
	if out.Progress.TotalXP != 20 || out.Progress.Accuracy != 80 {
		t.Errorf("progress xp/accuracy = %d/%v", out.Progress.TotalXP, out.Progress.Accuracy)
	}
	if len(out.Achievements) != 0 {
		t.Errorf("achievements = %+v, want none", out.Achievements)
	}
	if !out.Quiz.Graded() || !out.Quiz.CompletedAt.Equal(evalTime) {
		t.Errorf("quiz not completed at eval time: %+v", out.Quiz)
	}

	for _, q := range out.Questions {
		if !q.Graded() || q.Submitted == nil {
			t.Errorf("question %s not graded", q.ID)
		}
	}
	if *out.Questions[4].IsCorrect || out.Questions[4].XPEarned != 0 {
		t.Errorf("q-5 should be wrong with 0 xp")
	}
	if out.Questions[1].XPEarned != 5 {
		t.Errorf("q-2 xp = %d, want 5", out.Questions[1].XPEarned)
	}
}

func TestComputePerfectHardQuiz(t *testing.T) {
	qz, qs := easyQuiz("h", quiz.DifficultyHard)
	in := freshInput(qz, qs, allCorrect(qs))
	in.Held = achievements.Held{achievements.PerfectScore.Key(): true}

	out, err := NewEngine().Compute(in)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	if out.QuizXP() != 100 || out.Profile.Level != 2 {
		t.Errorf("xp/level = %d/%d, want 100/2", out.QuizXP(), out.Profile.Level)
	}
	if out.Progress.CurrentDifficulty != quiz.DifficultyHard {
		t.Errorf("difficulty = %s, want hard", out.Progress.CurrentDifficulty)
	}
	if len(out.Progress.WeakDomains) != 0 {
		t.Errorf("weak domains = %+v, want none", out.Progress.WeakDomains)
	}
	if len(out.Achievements) != 1 || out.Achievements[0].Name != "Perfect Score" {
		t.Fatalf("achievements = %+v, want Perfect Score", out.Achievements)
	}
	if out.Achievements[0].Occurrence != "h" || out.Achievements[0].UserID != "user-1" {
		t.Errorf("perfect score grant = %+v", out.Achievements[0])
	}
}

func TestComputeMissingAndUnknownAnswers(t *testing.T) {
	qz, qs := easyQuiz("m", quiz.DifficultyMedium)
	answers := map[string]quiz.Answer{
		"m-1":         quiz.Single("IAM role"),
		"not-a-quest": quiz.Single("whatever"),
	}

	out, err := NewEngine().Compute(freshInput(qz, qs, answers))
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if out.Score() != 1 || out.QuizXP() != 10 {
		t.Errorf("score/xp = %d/%d, want 1/10", out.Score(), out.QuizXP())
	}
	if out.Questions[2].Submitted != nil || *out.Questions[2].IsCorrect {
		t.Error("unanswered question should be incorrect with no submission")
	}
	// 20% accuracy regresses medium to easy.
	if out.Progress.CurrentDifficulty != quiz.DifficultyEasy {
		t.Errorf("difficulty = %s, want easy", out.Progress.CurrentDifficulty)
	}
	want := []progress.WeakDomain{{Name: "S3", Accuracy: 0}, {Name: "VPC", Accuracy: 0}, {Name: "IAM", Accuracy: 50}}
	if fmt.Sprint(out.Progress.WeakDomains) != fmt.Sprint(want) {
		t.Errorf("weak domains = %v, want %v", out.Progress.WeakDomains, want)
	}
}

func TestComputeStreakAndMilestone(t *testing.T) {
	qz, qs := easyQuiz("s", quiz.DifficultyEasy)
	in := freshInput(qz, qs, allCorrect(qs))
	yesterday := progress.DayOf(evalTime).AddDays(-1)
	in.Profile.LastQuizDate = &yesterday
	in.Profile.CurrentStreak = 6
	in.Profile.BestStreak = 6
	in.Profile.XP = 95
	in.Progress.QuestionsAnswered = 97

	out, err := NewEngine().Compute(in)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if out.Profile.CurrentStreak != 7 || out.Profile.BestStreak != 7 {
		t.Errorf("streak = %d/%d, want 7/7", out.Profile.CurrentStreak, out.Profile.BestStreak)
	}
	if out.Profile.XP != 120 || out.Profile.Level != 2 {
		t.Errorf("xp/level = %d/%d, want 120/2", out.Profile.XP, out.Profile.Level)
	}

	names := map[string]bool{}
	for _, a := range out.Achievements {
		names[a.Name] = true
	}
	for _, want := range []string{"7-Day Streak", "Perfect Score", "100 Questions"} {
		if !names[want] {
			t.Errorf("missing achievement %q in %v", want, names)
		}
	}
}

func TestComputeSameDayKeepsStreak(t *testing.T) {
	qz, qs := easyQuiz("d", quiz.DifficultyEasy)
	in := freshInput(qz, qs, nil)
	today := progress.DayOf(evalTime)
	in.Profile.LastQuizDate = &today
	in.Profile.CurrentStreak = 3
	in.Profile.BestStreak = 5

	out, err := NewEngine().Compute(in)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if out.Profile.CurrentStreak != 3 || out.Profile.BestStreak != 5 {
		t.Errorf("streak = %d/%d, want 3/5", out.Profile.CurrentStreak, out.Profile.BestStreak)
	}
	if out.Profile.XP != 0 {
		t.Errorf("xp = %d, want 0", out.Profile.XP)
	}
}

func TestComputeRejects(t *testing.T) {
	qz, qs := easyQuiz("r", quiz.DifficultyEasy)
	done := evalTime
	graded := qz
	graded.CompletedAt = &done

	if _, err := NewEngine().Compute(freshInput(graded, qs, nil)); !errors.Is(err, ErrAlreadyGraded) {
		t.Errorf("graded quiz: err = %v, want ErrAlreadyGraded", err)
	}
	if _, err := NewEngine().Compute(freshInput(qz, nil, nil)); !errors.Is(err, ErrNotFound) {
		t.Errorf("empty quiz: err = %v, want ErrNotFound", err)
	}
}

func TestComputeDoesNotMutateInput(t *testing.T) {
	qz, qs := easyQuiz("i", quiz.DifficultyEasy)
	in := freshInput(qz, qs, allCorrect(qs))

	if _, err := NewEngine().Compute(in); err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if in.Quiz.Graded() || qs[0].IsCorrect != nil || in.Profile.XP != 0 {
		t.Error("Compute mutated its input")
	}
}
