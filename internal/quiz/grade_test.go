package quiz

import "testing"

func answerPtr(a Answer) *Answer { return &a }

func TestGrade(t *testing.T) {
	tests := []struct {
		name      string
		typ       QuestionType
		correct   Answer
		submitted *Answer
		want      bool
	}{
		{"single exact", SingleChoice, Single("Amazon S3"), answerPtr(Single("Amazon S3")), true},
		{"single case sensitive", SingleChoice, Single("Amazon S3"), answerPtr(Single("amazon s3")), false},
		{"single different", SingleChoice, Single("Amazon S3"), answerPtr(Single("Amazon EBS")), false},
		{"single rejects multiple", SingleChoice, Single("Amazon S3"), answerPtr(Multiple("Amazon S3")), false},
		{"true false", TrueFalse, Single("True"), answerPtr(Single("True")), true},
		{"true false wrong", TrueFalse, Single("True"), answerPtr(Single("False")), false},
		{"missing", SingleChoice, Single("A"), nil, false},
		{"missing multi", MultiSelect, Multiple("A", "B"), nil, false},
		{"multi exact", MultiSelect, Multiple("A", "B"), answerPtr(Multiple("A", "B")), true},
		{"multi reordered", MultiSelect, Multiple("A", "B"), answerPtr(Multiple("B", "A")), true},
		{"multi duplicates", MultiSelect, Multiple("A", "B"), answerPtr(Multiple("B", "A", "A")), true},
		{"multi partial", MultiSelect, Multiple("A", "B"), answerPtr(Multiple("A")), false},
		{"multi superset", MultiSelect, Multiple("A", "B"), answerPtr(Multiple("A", "B", "C")), false},
		{"multi empty", MultiSelect, Multiple("A", "B"), answerPtr(Multiple()), false},
		{"multi single string", MultiSelect, Multiple("A"), answerPtr(Single("A")), false},
		{"multi one element", MultiSelect, Multiple("A"), answerPtr(Multiple("A")), true},
		{"unknown type", QuestionType("essay"), Single("A"), answerPtr(Single("A")), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Grade(tt.typ, tt.correct, tt.submitted); got != tt.want {
				t.Errorf("Grade() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGradeMultiSelectOrderIndependent(t *testing.T) {
	correct := Multiple("IAM", "S3", "EC2")
	perms := [][]string{
		{"IAM", "S3", "EC2"},
		{"EC2", "IAM", "S3"},
		{"S3", "EC2", "IAM", "S3"},
		{"EC2", "EC2", "S3", "IAM", "IAM"},
	}
	for _, p := range perms {
		if !Grade(MultiSelect, correct, answerPtr(Multiple(p...))) {
			t.Errorf("Grade(%v) = false, want true", p)
		}
	}
}

func TestTallyDomains(t *testing.T) {
	yes, no := true, false
	qs := []Question{
		{Domain: "IAM", IsCorrect: &yes},
		{Domain: "IAM", IsCorrect: &no},
		{Domain: "S3", IsCorrect: &yes},
		{Domain: "VPC"},
	}

	got := TallyDomains(qs)

	if len(got) != 2 {
		t.Fatalf("len(tallies) = %d, want 2", len(got))
	}
	if got["IAM"] != (DomainTally{Correct: 1, Total: 2}) {
		t.Errorf("IAM = %+v", got["IAM"])
	}
	if got["S3"] != (DomainTally{Correct: 1, Total: 1}) {
		t.Errorf("S3 = %+v", got["S3"])
	}
	if _, ok := got["VPC"]; ok {
		t.Error("ungraded domain VPC should not appear")
	}
	if acc := got["IAM"].Accuracy(); acc != 50 {
		t.Errorf("IAM accuracy = %v, want 50", acc)
	}
	if acc := (DomainTally{}).Accuracy(); acc != 0 {
		t.Errorf("empty accuracy = %v, want 0", acc)
	}
}
