package domain

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2021, 2, 8, 0, 0, 0, 0, time.UTC)

// at returns day + h:m
func at(h, m int) time.Time {
	return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

func iv(h1, m1, h2, m2 int) Interval {
	return Interval{Start: at(h1, m1), End: at(h2, m2)}
}

func TestNewInterval(t *testing.T) {
	tests := []struct {
		name    string
		start   time.Time
		end     time.Time
		wantErr bool
	}{
		{name: "valid", start: at(11, 0), end: at(12, 0)},
		{name: "equal bounds", start: at(11, 0), end: at(11, 0), wantErr: true},
		{name: "reversed", start: at(12, 0), end: at(11, 0), wantErr: true},
		{name: "zero start", end: at(11, 0), wantErr: true},
		{name: "zero end", start: at(11, 0), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewInterval(tt.start, tt.end)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidInterval))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, time.Hour, got.Duration())
		})
	}
}

func TestInterval_Overlaps(t *testing.T) {
	base := iv(11, 0, 11, 15)

	assert.True(t, base.Overlaps(iv(11, 10, 11, 25)))
	assert.True(t, base.Overlaps(iv(10, 0, 12, 0)))
	assert.True(t, base.Overlaps(iv(11, 5, 11, 10)))
	assert.False(t, base.Overlaps(iv(11, 15, 11, 30)), "touching intervals do not overlap")
	assert.False(t, base.Overlaps(iv(10, 45, 11, 0)), "touching intervals do not overlap")
	assert.False(t, base.Overlaps(iv(13, 0, 14, 0)))
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name string
		in   []Interval
		want []Interval
	}{
		{name: "empty", in: nil, want: []Interval{}},
		{
			name: "unsorted overlapping",
			in:   []Interval{iv(14, 0, 17, 0), iv(8, 0, 12, 0), iv(11, 0, 13, 0)},
			want: []Interval{iv(8, 0, 13, 0), iv(14, 0, 17, 0)},
		},
		{
			name: "touching intervals merge",
			in:   []Interval{iv(9, 0, 10, 0), iv(10, 0, 11, 0)},
			want: []Interval{iv(9, 0, 11, 0)},
		},
		{
			name: "contained interval",
			in:   []Interval{iv(9, 0, 12, 0), iv(10, 0, 11, 0)},
			want: []Interval{iv(9, 0, 12, 0)},
		},
		{
			name: "invalid intervals dropped",
			in:   []Interval{iv(10, 0, 9, 0), iv(11, 0, 11, 0), iv(12, 0, 13, 0)},
			want: []Interval{iv(12, 0, 13, 0)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Merge(tt.in))
		})
	}
}

func TestSubtract(t *testing.T) {
	tests := []struct {
		name     string
		base     []Interval
		toRemove []Interval
		want     []Interval
	}{
		{
			name: "nothing to remove",
			base: []Interval{iv(11, 0, 12, 0)},
			want: []Interval{iv(11, 0, 12, 0)},
		},
		{
			name:     "nothing to keep",
			toRemove: []Interval{iv(11, 0, 12, 0)},
			want:     nil,
		},
		{
			name:     "hole in the middle",
			base:     []Interval{iv(11, 0, 12, 14)},
			toRemove: []Interval{iv(11, 20, 11, 35)},
			want:     []Interval{iv(11, 0, 11, 20), iv(11, 35, 12, 14)},
		},
		{
			name:     "removal covers whole base",
			base:     []Interval{iv(11, 0, 11, 15)},
			toRemove: []Interval{iv(10, 0, 12, 0)},
			want:     []Interval{},
		},
		{
			name:     "removal spans two base intervals",
			base:     []Interval{iv(8, 0, 10, 0), iv(11, 0, 13, 0)},
			toRemove: []Interval{iv(9, 0, 12, 0)},
			want:     []Interval{iv(8, 0, 9, 0), iv(12, 0, 13, 0)},
		},
		{
			name:     "removal touching base start",
			base:     []Interval{iv(11, 0, 12, 0)},
			toRemove: []Interval{iv(10, 0, 11, 0)},
			want:     []Interval{iv(11, 0, 12, 0)},
		},
		{
			name:     "removals before and after",
			base:     []Interval{iv(11, 0, 12, 0)},
			toRemove: []Interval{iv(8, 0, 9, 0), iv(13, 0, 14, 0)},
			want:     []Interval{iv(11, 0, 12, 0)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Subtract(tt.base, tt.toRemove))
		})
	}
}

func TestInterval_Split(t *testing.T) {
	pieces := iv(11, 35, 12, 14).Split(15 * time.Minute)

	assert.Equal(t, []Interval{iv(11, 35, 11, 50), iv(11, 50, 12, 5)}, pieces)
	assert.Empty(t, iv(11, 0, 11, 10).Split(15*time.Minute))
	assert.Nil(t, iv(12, 0, 11, 0).Split(15*time.Minute))
	assert.Nil(t, iv(11, 0, 12, 0).Split(0))
}

// minutes returns the set of minute cells covered by intervals on the test grid
func minutes(intervals []Interval) map[int]bool {
	cells := make(map[int]bool)
	for _, in := range intervals {
		if !in.IsValid() {
			continue
		}
		for m := in.Start; m.Before(in.End); m = m.Add(time.Minute) {
			cells[int(m.Sub(day)/time.Minute)] = true
		}
	}
	return cells
}

func randomIntervals(rnd *rand.Rand, n int) []Interval {
	out := make([]Interval, 0, n)
	for i := 0; i < n; i++ {
		start := rnd.Intn(240)
		// allow empty and reversed intervals
		end := start + rnd.Intn(60) - 10
		out = append(out, Interval{
			Start: day.Add(time.Duration(start) * time.Minute),
			End:   day.Add(time.Duration(end) * time.Minute),
		})
	}
	return out
}

func TestMerge_Properties(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))

	for round := 0; round < 500; round++ {
		in := randomIntervals(rnd, rnd.Intn(12))
		merged := Merge(in)

		for i := range merged {
			require.True(t, merged[i].IsValid())
			if i > 0 {
				require.True(t, merged[i-1].End.Before(merged[i].Start),
					"round %d: %v and %v must be disjoint and non-touching", round, merged[i-1], merged[i])
			}
		}
		require.Equal(t, minutes(in), minutes(merged), "round %d: union must be preserved", round)
	}
}

func TestSubtract_Properties(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))

	for round := 0; round < 500; round++ {
		base := Merge(randomIntervals(rnd, rnd.Intn(8)))
		toRemove := Merge(randomIntervals(rnd, rnd.Intn(8)))

		got := minutes(Subtract(base, toRemove))

		baseCells := minutes(base)
		removeCells := minutes(toRemove)
		want := make(map[int]bool)
		for cell := range baseCells {
			if !removeCells[cell] {
				want[cell] = true
			}
		}

		require.Equal(t, want, got, "round %d: base=%v toRemove=%v", round, base, toRemove)
	}
}
