package quizgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are an AWS certification exam writer creating practice questions.

Rules:
- Write realistic, scenario-based questions in the style of the named AWS exam.
- Every question must be answerable from AWS documentation; avoid trivia about prices or limits that change often.
- multiple_choice: exactly 4 options, exactly one correct.
- multi_select: 4 or 5 options, 2 or 3 correct. The question text must say how many to choose.
- true_false: options are exactly ["True", "False"].
- correct_answer must repeat option text verbatim. Use a string for multiple_choice and true_false, an array of strings for multi_select.
- Options in one question must be distinct.
- The explanation says why the answer is correct and why each distractor is wrong.
- Set domain to the focus domain the question tests, spelled as given.
- Return JSON only.`

// buildPrompt renders the user message for in.
func buildPrompt(in Input) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Certification: %s (%s)\n", in.Certification.Name, in.Certification.Code)
	if in.Certification.Description != "" {
		fmt.Fprintf(&b, "About the exam: %s\n", in.Certification.Description)
	}
	fmt.Fprintf(&b, "Difficulty: %s\n", in.Difficulty)
	fmt.Fprintf(&b, "Focus domains: %s\n", strings.Join(in.FocusDomains, ", "))

	fmt.Fprintf(&b, "\nWrite %d questions:\n", in.Mix.Total())
	writeCount(&b, in.Mix.SingleChoice, "multiple_choice")
	writeCount(&b, in.Mix.MultiSelect, "multi_select")
	writeCount(&b, in.Mix.TrueFalse, "true_false")

	b.WriteString("\nSpread the questions across the focus domains and keep every question at the requested difficulty.")
	return b.String()
}

func writeCount(b *strings.Builder, n int, kind string) {
	if n > 0 {
		fmt.Fprintf(b, "- %d %s\n", n, kind)
	}
}
