package planner

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrInvalidTime is returned for malformed "HH:MM" strings.
var ErrInvalidTime = errors.New("invalid time")

// TimeRange is a half-open interval in minutes since local midnight.
// Start < End for a meaningful range; a range with Start >= End is
// degenerate and skipped by MergeRanges.
type TimeRange struct {
	Start int
	End   int
}

// ToMinutes parses a local "HH:MM" string into minutes since midnight.
// Malformed input is a caller error, never silently coerced.
func ToMinutes(s string) (int, error) {
	h, m, ok := strings.Cut(s, ":")
	if !ok {
		return 0, fmt.Errorf("%w: %q: missing colon", ErrInvalidTime, s)
	}
	hours, err := strconv.Atoi(h)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: bad hour", ErrInvalidTime, s)
	}
	mins, err := strconv.Atoi(m)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: bad minute", ErrInvalidTime, s)
	}
	if hours < 0 || hours > 23 || mins < 0 || mins > 59 {
		return 0, fmt.Errorf("%w: %q: out of range", ErrInvalidTime, s)
	}
	return hours*60 + mins, nil
}

// ToTimeString formats minutes since midnight as a zero-padded "HH:MM".
// Values must be in [0, 1440); midnight rollover never occurs because
// every result is clipped to a single-day workday window.
func ToTimeString(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ParseRange parses a start/end pair of "HH:MM" strings.
func ParseRange(start, end string) (TimeRange, error) {
	s, err := ToMinutes(start)
	if err != nil {
		return TimeRange{}, err
	}
	e, err := ToMinutes(end)
	if err != nil {
		return TimeRange{}, err
	}
	return TimeRange{Start: s, End: e}, nil
}

// Valid reports whether the range has positive length.
func (r TimeRange) Valid() bool {
	return r.Start < r.End
}

// Minutes returns the length of the range in minutes.
func (r TimeRange) Minutes() int {
	return r.End - r.Start
}

// Overlaps reports whether two ranges share any time. Touching ranges
// (a.End == b.Start) do not overlap, but they do merge as adjacent.
func (r TimeRange) Overlaps(o TimeRange) bool {
	return r.Start < o.End && o.Start < r.End
}

// ContainsTick reports whether a sweep tick falls inside the range.
// Both boundaries are inclusive: a tick exactly at the end of a busy
// range still counts as busy.
func (r TimeRange) ContainsTick(tick int) bool {
	return tick >= r.Start && tick <= r.End
}

// String returns the range as "HH:MM-HH:MM".
func (r TimeRange) String() string {
	return ToTimeString(r.Start) + "-" + ToTimeString(r.End)
}

// MergeRanges collapses an unordered range list into a sorted list of
// non-overlapping, non-touching ranges covering the same busy time.
// Degenerate ranges (Start >= End) are dropped so one bad record never
// poisons the rest of the group's timeline. The result is independent
// of input order and merging an already merged list is a no-op.
func MergeRanges(ranges []TimeRange) []TimeRange {
	valid := make([]TimeRange, 0, len(ranges))
	for _, r := range ranges {
		if r.Valid() {
			valid = append(valid, r)
		}
	}
	if len(valid) == 0 {
		return nil
	}

	sort.Slice(valid, func(i, j int) bool {
		if valid[i].Start != valid[j].Start {
			return valid[i].Start < valid[j].Start
		}
		return valid[i].End < valid[j].End
	})

	merged := make([]TimeRange, 0, len(valid))
	acc := valid[0]
	for _, r := range valid[1:] {
		// Adjacent ranges merge too, so merged output never touches.
		if r.Start <= acc.End {
			if r.End > acc.End {
				acc.End = r.End
			}
			continue
		}
		merged = append(merged, acc)
		acc = r
	}
	return append(merged, acc)
}

// TotalMinutes sums the lengths of all ranges in the list.
func TotalMinutes(ranges []TimeRange) int {
	total := 0
	for _, r := range ranges {
		total += r.Minutes()
	}
	return total
}
