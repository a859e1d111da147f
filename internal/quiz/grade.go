package quiz

// Grade reports whether submitted is a correct answer to a question of type t
// whose correct answer is correct. A nil submission is incorrect.
//
// Single-choice and true/false questions compare option text exactly and
// reject a multi-option submission. Multi-select questions compare sets, so
// order and repeated entries do not matter, and reject a single-option
// submission.
func Grade(t QuestionType, correct Answer, submitted *Answer) bool {
	if submitted == nil {
		return false
	}
	switch t {
	case SingleChoice, TrueFalse:
		if submitted.IsMultiple() || correct.IsMultiple() {
			return false
		}
		return submitted.Value() == correct.Value()
	case MultiSelect:
		if !submitted.IsMultiple() {
			return false
		}
		return sameSet(correct.Set(), submitted.Set())
	}
	return false
}

func sameSet(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}
