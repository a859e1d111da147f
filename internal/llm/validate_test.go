package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"single answer", `{"question_text":"q","question_type":"multiple_choice","correct_answer":"Amazon S3"}`, false},
		{"multi answer", `{"question_text":"q","question_type":"multi_select","correct_answer":["IAM","KMS"]}`, false},
		{"missing required", `{"question_text":"q","question_type":"true_false"}`, true},
		{"unknown type", `{"question_text":"q","question_type":"essay","correct_answer":"x"}`, true},
		{"answer is a number", `{"question_text":"q","question_type":"true_false","correct_answer":1}`, true},
		{"answer list of numbers", `{"question_text":"q","question_type":"multi_select","correct_answer":[1,2]}`, true},
		{"extra property", `{"question_text":"q","question_type":"true_false","correct_answer":"True","hint":"x"}`, true},
		{"malformed json", `{not json}`, true},
		{"empty", ``, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(answerSchema(), json.RawMessage(tt.raw))
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var inv *ErrInvalidResponse
			assert.ErrorAs(t, err, &inv)
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	assert.NoError(t, validateResponse(nil, json.RawMessage(`not even json`)))
}

func TestValidateResponse_BrokenSchema(t *testing.T) {
	broken := &Schema{
		Name:       "test-broken",
		Definition: map[string]any{"type": 12},
	}
	var inv *ErrInvalidResponse
	assert.ErrorAs(t, validateResponse(broken, json.RawMessage(`{}`)), &inv)
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain json", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"padded", "  \n```json\n{\"a\":1}\n```\n", `{"a":1}`},
		{"single line", "```{\"a\":1}```", `{"a":1}`},
		{"unterminated", "```json\n{\"a\":1}", "```json\n{\"a\":1}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, string(StripCodeFence([]byte(tt.in))))
		})
	}
}
