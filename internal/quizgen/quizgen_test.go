package quizgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/certprep/internal/quiz"
)

func TestMixFor(t *testing.T) {
	tests := []struct {
		count int
		want  Mix
	}{
		{0, Mix{}},
		{1, Mix{SingleChoice: 1}},
		{2, Mix{SingleChoice: 2}},
		{3, Mix{SingleChoice: 1, MultiSelect: 1, TrueFalse: 1}},
		{5, Mix{SingleChoice: 3, MultiSelect: 1, TrueFalse: 1}},
		{10, Mix{SingleChoice: 6, MultiSelect: 2, TrueFalse: 2}},
	}
	for _, tt := range tests {
		got := MixFor(tt.count)
		assert.Equal(t, tt.want, got, "count %d", tt.count)
		assert.Equal(t, tt.count, got.Total())
	}
}

func TestFocusDomains(t *testing.T) {
	assert.Equal(t, AWSDomains[:3], FocusDomains(nil))
	assert.Equal(t, AWSDomains[:3], FocusDomains([]string{"", ""}))
	assert.Equal(t, []string{"VPC"}, FocusDomains([]string{"VPC"}))
	assert.Equal(t,
		[]string{"IAM", "S3", "VPC"},
		FocusDomains([]string{"IAM", "S3", "IAM", "VPC", "RDS"}))
}

func TestBuildPrompt(t *testing.T) {
	p := buildPrompt(Input{
		Certification: quiz.Certification{ID: "aws-saa-c03", Code: "SAA-C03", Name: "AWS Certified Solutions Architect - Associate"},
		Difficulty:    quiz.DifficultyMedium,
		FocusDomains:  []string{"VPC", "IAM"},
		Mix:           MixFor(5),
	})

	assert.Contains(t, p, "Certification: AWS Certified Solutions Architect - Associate (SAA-C03)")
	assert.Contains(t, p, "Difficulty: medium")
	assert.Contains(t, p, "Focus domains: VPC, IAM")
	assert.Contains(t, p, "Write 5 questions:")
	assert.Contains(t, p, "- 3 multiple_choice")
	assert.Contains(t, p, "- 1 multi_select")
	assert.Contains(t, p, "- 1 true_false")
	assert.NotContains(t, p, "About the exam")
}

func TestParseDrafts(t *testing.T) {
	fenced := "```json\n" + `{"questions":[{"question_text":"q","question_type":"true_false","options":["True","False"],"correct_answer":"True","explanation":"e","difficulty":"easy","domain":"S3"}]}` + "\n```"
	drafts, err := parseDrafts([]byte(fenced))
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, quiz.Single("True"), drafts[0].CorrectAnswer)

	bad := []string{
		`not json`,
		`{"questions":[{"question_text":"q","hint":"x"}]}`,
		`{"questions":[{"correct_answer":42}]}`,
		`{"questions":[]} {"questions":[]}`,
	}
	for _, raw := range bad {
		_, err := parseDrafts([]byte(raw))
		assert.ErrorIs(t, err, ErrMalformed, raw)
	}
}

func TestValidationErrorIsMalformed(t *testing.T) {
	var err error = &ValidationError{Validator: "answer", Message: "x"}
	assert.ErrorIs(t, err, ErrMalformed)
	assert.True(t, strings.HasPrefix(err.Error(), `validator "answer"`))
}
