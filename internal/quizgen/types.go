// Package quizgen builds AWS certification quizzes from LLM output.
// Model replies are validated strictly and either become a stored,
// ungraded quiz or are rejected whole.
package quizgen

import (
	"github.com/abhisek/certprep/internal/quiz"
)

// Request asks for a new quiz.
type Request struct {
	UserID          string
	CertificationID string

	// Difficulty defaults to the user's current difficulty for the
	// certification, or easy for a first quiz.
	Difficulty quiz.Difficulty

	// WeakDomains overrides the weak domains stored on the user's progress.
	WeakDomains []string
}

// Input is what the generator sends to the model.
type Input struct {
	Certification quiz.Certification
	Difficulty    quiz.Difficulty
	FocusDomains  []string
	Mix           Mix
}

// Mix is the number of questions per type.
type Mix struct {
	SingleChoice int
	MultiSelect  int
	TrueFalse    int
}

// Total returns the number of questions in the mix.
func (m Mix) Total() int {
	return m.SingleChoice + m.MultiSelect + m.TrueFalse
}

// MixFor splits count questions so that a fifth (at least one) are
// multi-select and a fifth (at least one) are true/false. Five questions
// give 3 single choice, 1 multi-select and 1 true/false.
func MixFor(count int) Mix {
	if count <= 0 {
		return Mix{}
	}
	if count < 3 {
		return Mix{SingleChoice: count}
	}
	multi := max(1, count/5)
	tf := max(1, count/5)
	return Mix{SingleChoice: count - multi - tf, MultiSelect: multi, TrueFalse: tf}
}

// Draft is one question as the model returned it.
type Draft struct {
	QuestionText  string      `json:"question_text"`
	QuestionType  string      `json:"question_type"`
	Options       []string    `json:"options"`
	CorrectAnswer quiz.Answer `json:"correct_answer"`
	Explanation   string      `json:"explanation"`
	Difficulty    string      `json:"difficulty"`
	Domain        string      `json:"domain"`
}

// payload is the top-level model reply.
type payload struct {
	Questions []Draft `json:"questions"`
}

// Generated is a stored quiz.
type Generated struct {
	Quiz      *quiz.Quiz
	Questions []quiz.Question
}
