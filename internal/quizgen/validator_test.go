package quizgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/certprep/internal/quiz"
)

func singleDraft() Draft {
	return Draft{
		QuestionText:  "A company needs durable object storage for static assets. Which service fits?",
		QuestionType:  "multiple_choice",
		Options:       []string{"Amazon S3", "Amazon EBS", "Amazon EFS", "Instance store"},
		CorrectAnswer: quiz.Single("Amazon S3"),
		Explanation:   "S3 is object storage with eleven nines of durability.",
		Difficulty:    "easy",
		Domain:        "S3 (Simple Storage Service)",
	}
}

func multiDraft() Draft {
	return Draft{
		QuestionText:  "Which TWO services can enforce MFA for console users?",
		QuestionType:  "multi_select",
		Options:       []string{"IAM", "AWS Organizations", "Amazon Cognito", "Amazon S3"},
		CorrectAnswer: quiz.Multiple("IAM", "Amazon Cognito"),
		Explanation:   "IAM policies and Cognito user pools can require MFA.",
		Difficulty:    "medium",
		Domain:        "IAM (Identity and Access Management)",
	}
}

func tfDraft() Draft {
	return Draft{
		QuestionText:  "Security groups are stateful.",
		QuestionType:  "true_false",
		Options:       []string{"True", "False"},
		CorrectAnswer: quiz.Single("True"),
		Explanation:   "Return traffic is allowed automatically.",
		Difficulty:    "easy",
		Domain:        "VPC (Virtual Private Cloud)",
	}
}

func TestValidators_AcceptGoodBatch(t *testing.T) {
	drafts := []Draft{singleDraft(), multiDraft(), tfDraft()}
	for _, v := range DefaultValidators(5) {
		assert.Nil(t, v.Validate(drafts, Input{}), v.Name())
	}
}

func TestValidators_Reject(t *testing.T) {
	tests := []struct {
		name      string
		validator string
		mutate    func(*Draft)
		base      func() Draft
	}{
		{"empty text", "structural", func(d *Draft) { d.QuestionText = "  " }, singleDraft},
		{"empty explanation", "structural", func(d *Draft) { d.Explanation = "" }, singleDraft},
		{"empty domain", "structural", func(d *Draft) { d.Domain = "" }, singleDraft},
		{"unknown type", "structural", func(d *Draft) { d.QuestionType = "essay" }, singleDraft},
		{"unknown difficulty", "structural", func(d *Draft) { d.Difficulty = "expert" }, singleDraft},
		{"no options", "options", func(d *Draft) { d.Options = nil }, singleDraft},
		{"duplicate option", "options", func(d *Draft) { d.Options = []string{"Amazon S3", "Amazon S3", "EBS"} }, singleDraft},
		{"blank option", "options", func(d *Draft) { d.Options = []string{"Amazon S3", " "} }, singleDraft},
		{"true false wording", "options", func(d *Draft) { d.Options = []string{"Yes", "No"} }, tfDraft},
		{"true false order", "options", func(d *Draft) { d.Options = []string{"False", "True"} }, tfDraft},
		{"single answer not an option", "answer", func(d *Draft) { d.CorrectAnswer = quiz.Single("amazon s3") }, singleDraft},
		{"single answer as list", "answer", func(d *Draft) { d.CorrectAnswer = quiz.Multiple("Amazon S3") }, singleDraft},
		{"true false answer not an option", "answer", func(d *Draft) { d.CorrectAnswer = quiz.Single("true") }, tfDraft},
		{"multi answer as string", "answer", func(d *Draft) { d.CorrectAnswer = quiz.Single("IAM") }, multiDraft},
		{"multi answer empty", "answer", func(d *Draft) { d.CorrectAnswer = quiz.Multiple() }, multiDraft},
		{"multi answer repeats", "answer", func(d *Draft) { d.CorrectAnswer = quiz.Multiple("IAM", "IAM") }, multiDraft},
		{"multi answer not an option", "answer", func(d *Draft) { d.CorrectAnswer = quiz.Multiple("IAM", "KMS") }, multiDraft},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := tt.base()
			tt.mutate(&d)
			drafts := []Draft{singleDraft(), d}

			var got *ValidationError
			for _, v := range DefaultValidators(5) {
				if got = v.Validate(drafts, Input{}); got != nil {
					break
				}
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.validator, got.Validator)
			assert.Contains(t, got.Message, "question 2:")
			assert.True(t, got.Retryable)
		})
	}
}

func TestCountValidator(t *testing.T) {
	v := &CountValidator{Max: 2}
	assert.NotNil(t, v.Validate(nil, Input{}))
	assert.Nil(t, v.Validate([]Draft{singleDraft(), tfDraft()}, Input{}))
	assert.NotNil(t, v.Validate([]Draft{singleDraft(), tfDraft(), multiDraft()}, Input{}))
}

func TestCountValidator_MatchesMix(t *testing.T) {
	v := &CountValidator{Max: 10}
	in := Input{Mix: MixFor(3)}

	assert.Nil(t, v.Validate([]Draft{singleDraft(), multiDraft(), tfDraft()}, in))

	got := v.Validate([]Draft{singleDraft(), tfDraft()}, in)
	require.NotNil(t, got)
	assert.Equal(t, "count", got.Validator)
	assert.True(t, got.Retryable)
	assert.Contains(t, got.Message, "got 2 questions, want 3")
}
