package domain

import (
	"fmt"
	"sort"
	"time"
)

// Interval is a half-open time range [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval validates bounds and returns an Interval
func NewInterval(start, end time.Time) (Interval, error) {
	if start.IsZero() || end.IsZero() {
		return Interval{}, fmt.Errorf("%w: bounds cannot be empty", ErrInvalidInterval)
	}
	if !start.Before(end) {
		return Interval{}, fmt.Errorf("%w: start %s must be before end %s",
			ErrInvalidInterval, start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return Interval{Start: start, End: end}, nil
}

// IsValid reports whether Start is strictly before End
func (i Interval) IsValid() bool {
	return i.Start.Before(i.End)
}

// Duration returns End - Start
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Overlaps reports whether two intervals share at least one instant.
// Intervals that only touch (a.End == b.Start) do not overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// Equal compares bounds as instants
func (i Interval) Equal(other Interval) bool {
	return i.Start.Equal(other.Start) && i.End.Equal(other.End)
}

func (i Interval) String() string {
	return fmt.Sprintf("[%s, %s)", i.Start.Format(time.RFC3339), i.End.Format(time.RFC3339))
}

// Merge drops invalid intervals, sorts the rest by (Start, End) and folds
// overlapping or touching intervals together.
// The result is sorted and pairwise disjoint (and non-touching).
func Merge(intervals []Interval) []Interval {
	valid := make([]Interval, 0, len(intervals))
	for _, in := range intervals {
		if in.IsValid() {
			valid = append(valid, in)
		}
	}

	sort.Slice(valid, func(a, b int) bool {
		if !valid[a].Start.Equal(valid[b].Start) {
			return valid[a].Start.Before(valid[b].Start)
		}
		return valid[a].End.Before(valid[b].End)
	})

	merged := make([]Interval, 0, len(valid))
	for _, current := range valid {
		if len(merged) == 0 {
			merged = append(merged, current)
			continue
		}

		last := &merged[len(merged)-1]
		if last.End.Before(current.Start) {
			merged = append(merged, current)
			continue
		}
		last.End = maxTime(last.End, current.End)
	}

	return merged
}

// Subtract returns the parts of base not covered by toRemove.
// Both inputs must be sorted and disjoint (output of Merge): the cursor over
// toRemove only moves forward.
func Subtract(base, toRemove []Interval) []Interval {
	if len(base) == 0 || len(toRemove) == 0 {
		return base
	}

	result := make([]Interval, 0, len(base))
	j := 0

	for _, current := range base {
		start, end := current.Start, current.End

		// removals ending before this interval can't affect later ones either
		for j < len(toRemove) && toRemove[j].End.Before(start) {
			j++
		}

		for k := j; k < len(toRemove) && toRemove[k].Start.Before(end); k++ {
			overlap := toRemove[k]
			if start.Before(overlap.Start) {
				result = append(result, Interval{Start: start, End: overlap.Start})
			}
			start = maxTime(start, overlap.End)
		}

		if start.Before(end) {
			result = append(result, Interval{Start: start, End: end})
		}
	}

	return result
}

// Split cuts the interval into consecutive pieces of exactly d,
// dropping a trailing remainder shorter than d
func (i Interval) Split(d time.Duration) []Interval {
	if d <= 0 || !i.IsValid() {
		return nil
	}

	pieces := make([]Interval, 0, int(i.Duration()/d))
	for start := i.Start; !start.Add(d).After(i.End); start = start.Add(d) {
		pieces = append(pieces, Interval{Start: start, End: start.Add(d)})
	}
	return pieces
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
