package quizgen

import "github.com/abhisek/certprep/internal/llm"

// QuizSchema is the JSON schema the model reply must satisfy.
var QuizSchema = &llm.Schema{
	Name:        "aws-quiz-questions",
	Description: "A set of AWS certification practice questions with answers and explanations",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":        "array",
				"description": "The generated questions, in the order they should be asked",
				"items":       questionSchema,
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

var questionSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"question_text": map[string]any{
			"type":        "string",
			"description": "A scenario-based exam question in plain text",
		},
		"question_type": map[string]any{
			"type":        "string",
			"enum":        []any{"multiple_choice", "multi_select", "true_false"},
			"description": "multiple_choice has one correct option, multi_select several, true_false is True or False",
		},
		"options": map[string]any{
			"type":        "array",
			"items":       map[string]any{"type": "string"},
			"description": "Answer options. Four for multiple_choice, four or five for multi_select, exactly [\"True\", \"False\"] for true_false.",
		},
		"correct_answer": map[string]any{
			"description": "The exact text of the correct option, or an array of option texts for multi_select",
			"anyOf": []any{
				map[string]any{"type": "string"},
				map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			},
		},
		"explanation": map[string]any{
			"type":        "string",
			"description": "Why the correct answer is right and the distractors are wrong",
		},
		"difficulty": map[string]any{
			"type": "string",
			"enum": []any{"easy", "medium", "hard"},
		},
		"domain": map[string]any{
			"type":        "string",
			"description": "The knowledge domain the question tests, e.g. \"S3 (Simple Storage Service)\"",
		},
	},
	"required":             []any{"question_text", "question_type", "options", "correct_answer", "explanation", "difficulty", "domain"},
	"additionalProperties": false,
}
