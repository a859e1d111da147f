package progress

import (
	"fmt"
	"strings"
	"time"
)

const dayLayout = "2006-01-02"

// Day is a calendar day in UTC.
type Day struct {
	t time.Time
}

// DayOf returns the UTC calendar day containing t.
func DayOf(t time.Time) Day {
	y, m, d := t.UTC().Date()
	return Day{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDay parses a YYYY-MM-DD date.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		return Day{}, fmt.Errorf("parsing day %q: %w", s, err)
	}
	return Day{t: t}, nil
}

func (d Day) String() string { return d.t.Format(dayLayout) }

func (d Day) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Day) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	parsed, err := ParseDay(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Time returns midnight UTC of the day.
func (d Day) Time() time.Time { return d.t }

// IsZero reports whether d is the zero Day.
func (d Day) IsZero() bool { return d.t.IsZero() }

// DaysSince returns the number of calendar days from earlier to d. It is
// negative when earlier is after d.
func (d Day) DaysSince(earlier Day) int {
	return int(d.t.Sub(earlier.t).Hours() / 24)
}

// AddDays returns the day n days after d.
func (d Day) AddDays(n int) Day {
	return Day{t: d.t.AddDate(0, 0, n)}
}

// NextStreak computes the streak after completing a quiz on today, given the
// previous quiz day (nil when there is none) and the current streak.
func NextStreak(last *Day, current int, today Day) int {
	if last == nil {
		return 1
	}
	switch gap := today.DaysSince(*last); {
	case gap == 0:
		if current < 1 {
			return 1
		}
		return current
	case gap == 1:
		return current + 1
	case gap > 1:
		return 1
	default:
		return current
	}
}
