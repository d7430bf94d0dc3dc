package period

import (
	"strings"
	"time"

	errors "github.com/frahmantamala/family-ledger/internal"
)

// Period is an inclusive range of calendar days, both ends at UTC midnight.
type Period struct {
	From time.Time
	To   time.Time
}

// Clock returns the current time. Swapped out in tests.
type Clock func() time.Time

func SystemClock() time.Time { return time.Now() }

// CurrentMonth spans the first to the last day of now's month.
func CurrentMonth(now time.Time) Period {
	y, m, _ := now.Date()
	first := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	return Period{From: first, To: first.AddDate(0, 1, -1)}
}

// Parse reads YYYY-MM-DD bounds. A missing bound falls back to the
// corresponding edge of now's month.
func Parse(from, to string, now time.Time) (Period, error) {
	p := CurrentMonth(now)

	if s := strings.TrimSpace(from); s != "" {
		d, err := ParseDate(s)
		if err != nil {
			return Period{}, errors.NewValidationFieldError("from", "from must be a date in YYYY-MM-DD format", errors.ErrCodeInvalidDate)
		}
		p.From = d
	}
	if s := strings.TrimSpace(to); s != "" {
		d, err := ParseDate(s)
		if err != nil {
			return Period{}, errors.NewValidationFieldError("to", "to must be a date in YYYY-MM-DD format", errors.ErrCodeInvalidDate)
		}
		p.To = d
	}

	if p.To.Before(p.From) {
		return Period{}, errors.NewValidationFieldError("to", "to must not be before from", errors.ErrCodeInvalidDate)
	}
	return p, nil
}

func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(time.DateOnly, s, time.UTC)
}

// End is the exclusive upper bound: midnight after the last day.
func (p Period) End() time.Time {
	return p.To.AddDate(0, 0, 1)
}

func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.From) && t.Before(p.End())
}

func (p Period) String() string {
	return p.From.Format(time.DateOnly) + ".." + p.To.Format(time.DateOnly)
}
