package quiz

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

// Answer is either a single option or a set of options. The zero value is
// an empty single answer.
type Answer struct {
	values []string
	multi  bool
}

// Single returns a single-option answer.
func Single(v string) Answer {
	return Answer{values: []string{v}}
}

// Multiple returns a multi-option answer. Order is kept for display only;
// grading compares sets.
func Multiple(vs ...string) Answer {
	return Answer{values: slices.Clone(vs), multi: true}
}

// IsMultiple reports whether the answer is the multi-option variant.
func (a Answer) IsMultiple() bool { return a.multi }

// Value returns the single option, or "" for a multi-option answer.
func (a Answer) Value() string {
	if a.multi || len(a.values) == 0 {
		return ""
	}
	return a.values[0]
}

// Values returns a copy of all options in the answer.
func (a Answer) Values() []string {
	return slices.Clone(a.values)
}

// Set returns the options as a set.
func (a Answer) Set() map[string]struct{} {
	set := make(map[string]struct{}, len(a.values))
	for _, v := range a.values {
		set[v] = struct{}{}
	}
	return set
}

// Equal reports structural equality, including the variant.
func (a Answer) Equal(b Answer) bool {
	return a.multi == b.multi && slices.Equal(a.values, b.values)
}

func (a Answer) String() string {
	if a.multi {
		return fmt.Sprintf("%v", a.values)
	}
	return a.Value()
}

// MarshalJSON encodes a single answer as a JSON string and a multi-option
// answer as a JSON array.
func (a Answer) MarshalJSON() ([]byte, error) {
	if a.multi {
		if a.values == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(a.values)
	}
	return json.Marshal(a.Value())
}

// UnmarshalJSON accepts a JSON string or an array of strings.
func (a *Answer) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty answer")
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Single(s)
		return nil
	case '[':
		var vs []string
		if err := json.Unmarshal(data, &vs); err != nil {
			return fmt.Errorf("answer array must contain strings: %w", err)
		}
		if vs == nil {
			vs = []string{}
		}
		*a = Answer{values: vs, multi: true}
		return nil
	}
	return fmt.Errorf("answer must be a string or an array of strings, got %s", string(data))
}

// Submission is an answers map as received from a client, keyed by question
// id. A null entry marks a question left unanswered.
type Submission map[string]*Answer

// Answers returns the submitted answers without the unanswered entries.
func (s Submission) Answers() map[string]Answer {
	out := make(map[string]Answer, len(s))
	for id, a := range s {
		if a != nil {
			out[id] = *a
		}
	}
	return out
}
