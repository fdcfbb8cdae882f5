// Package period selects records by creation time.
package period

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidPeriod = errors.New("invalid period")

// Stamped is a record with a creation timestamp. ok is false when the
// timestamp is missing or could not be parsed.
type Stamped interface {
	Created() (t time.Time, ok bool)
}

// Policy decides where records without a usable timestamp go.
type Policy int

const (
	// PolicyExclude drops unstamped records from every subset.
	PolicyExclude Policy = iota
	// PolicyIncludeCumulative keeps unstamped records in cumulative totals
	// while still leaving them out of the within-period subset.
	PolicyIncludeCumulative
)

// Range is an inclusive [Start, End] interval.
type Range struct {
	Start time.Time
	End   time.Time
}

// Month returns the full calendar month in loc.
func Month(year int, month time.Month, loc *time.Location) Range {
	if loc == nil {
		loc = time.UTC
	}
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return Range{
		Start: start,
		End:   start.AddDate(0, 1, 0).Add(-time.Nanosecond),
	}
}

func Between(start, end time.Time) (Range, error) {
	if start.IsZero() || end.IsZero() {
		return Range{}, fmt.Errorf("%w: start and end are required", ErrInvalidPeriod)
	}
	if end.Before(start) {
		return Range{}, fmt.Errorf("%w: end before start", ErrInvalidPeriod)
	}
	return Range{Start: start, End: end}, nil
}

func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Split returns the records created within r and the records existing as of r.End.
func Split[T Stamped](records []T, r Range, policy Policy) (within, cumulative []T) {
	within = make([]T, 0, len(records))
	cumulative = make([]T, 0, len(records))
	for _, rec := range records {
		t, ok := rec.Created()
		if !ok {
			if policy == PolicyIncludeCumulative {
				cumulative = append(cumulative, rec)
			}
			continue
		}
		if r.Contains(t) {
			within = append(within, rec)
		}
		if !t.After(r.End) {
			cumulative = append(cumulative, rec)
		}
	}
	return within, cumulative
}

func Within[T Stamped](records []T, r Range) []T {
	within, _ := Split(records, r, PolicyExclude)
	return within
}

func AsOf[T Stamped](records []T, end time.Time, policy Policy) []T {
	_, cumulative := Split(records, Range{End: end}, policy)
	return cumulative
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999Z07",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z07",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses the ISO-8601 variants emitted by PostgreSQL and
// PostgREST. A failed parse returns the zero time and false.
func ParseTimestamp(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
