package planner

import (
	"sort"

	"github.com/FertVad/rehearsal-calendar-app-sub001/internal/models"
)

// Confidence labels a suggested slot. High means the entire selected
// group has zero busy time that day; any busy time anywhere downgrades
// every suggestion to medium.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
)

// DefaultMinSlotMinutes is the shortest gap worth suggesting.
const DefaultMinSlotMinutes = 60

// SuggestedSlot is one free window from the single-day ranker.
type SuggestedSlot struct {
	StartTime     string     `json:"start_time"`
	EndTime       string     `json:"end_time"`
	DurationHours float64    `json:"duration_hours"`
	Confidence    Confidence `json:"confidence"`
}

// FreeGaps inverts a merged busy timeline into its complementary free
// gaps, clipped to the workday window. Gaps that fall entirely outside
// the window or collapse to nothing after clipping are dropped. The
// busy list must already be merged (see MergeRanges); gaps are returned
// in ascending start order.
func FreeGaps(busy []TimeRange, window TimeRange) []TimeRange {
	if !window.Valid() {
		return nil
	}

	var gaps []TimeRange
	cursor := window.Start
	for _, b := range busy {
		if b.End <= window.Start || b.Start >= window.End {
			continue
		}
		if b.Start > cursor {
			gaps = append(gaps, TimeRange{Start: cursor, End: minInt(b.Start, window.End)})
		}
		if b.End > cursor {
			cursor = b.End
		}
	}
	if cursor < window.End {
		gaps = append(gaps, TimeRange{Start: cursor, End: window.End})
	}
	return gaps
}

// RankDay turns the group busy timeline into ranked suggestions. Gaps
// shorter than minSlotMinutes are discarded (a gap of exactly the
// minimum is kept). Confidence is high only when the busy timeline is
// completely empty; the window-spanning gap that produces is already
// inside working hours by construction.
func RankDay(busy []TimeRange, window TimeRange, minSlotMinutes int) []SuggestedSlot {
	if minSlotMinutes <= 0 {
		minSlotMinutes = DefaultMinSlotMinutes
	}

	confidence := ConfidenceMedium
	if len(busy) == 0 {
		confidence = ConfidenceHigh
	}

	var slots []SuggestedSlot
	for _, gap := range FreeGaps(busy, window) {
		if gap.Minutes() < minSlotMinutes {
			continue
		}
		slots = append(slots, SuggestedSlot{
			StartTime:     ToTimeString(gap.Start),
			EndTime:       ToTimeString(gap.End),
			DurationHours: hoursBetween(gap.Start, gap.End),
			Confidence:    confidence,
		})
	}

	// Fixed-width zero-padded times make the lexicographic order
	// chronological.
	sort.Slice(slots, func(i, j int) bool {
		return slots[i].StartTime < slots[j].StartTime
	})
	return slots
}

// SuggestBestSlots is the single-day facade: union the selected
// people's pre-reconciled busy ranges and rank the remaining gaps.
// Returns nothing when no date or no people are given.
func SuggestBestSlots(date string, selected []models.Person, busyByPerson map[string][]TimeRange, window TimeRange, minSlotMinutes int) []SuggestedSlot {
	if date == "" || len(selected) == 0 {
		return nil
	}

	var all []TimeRange
	for _, p := range selected {
		all = append(all, busyByPerson[p.ID]...)
	}
	return RankDay(MergeRanges(all), window, minSlotMinutes)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
