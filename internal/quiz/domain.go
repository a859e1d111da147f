package quiz

// DomainTally counts graded questions for one knowledge domain.
type DomainTally struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// Accuracy returns correct/total as a percentage, or 0 for an empty tally.
func (t DomainTally) Accuracy() float64 {
	if t.Total == 0 {
		return 0
	}
	return float64(t.Correct) / float64(t.Total) * 100
}

// TallyDomains accumulates correct and total counts per domain over graded
// questions. Ungraded questions are skipped.
func TallyDomains(questions []Question) map[string]DomainTally {
	tallies := make(map[string]DomainTally)
	for _, q := range questions {
		if q.IsCorrect == nil {
			continue
		}
		t := tallies[q.Domain]
		t.Total++
		if *q.IsCorrect {
			t.Correct++
		}
		tallies[q.Domain] = t
	}
	return tallies
}
