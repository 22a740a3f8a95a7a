package planner

import (
	"math"
	"sort"
)

// SlotCategory is a coarse quality label for a group time window.
type SlotCategory string

const (
	CategoryPerfect SlotCategory = "perfect"
	CategoryGood    SlotCategory = "good"
	CategoryOK      SlotCategory = "ok"
	CategoryBad     SlotCategory = "bad"
)

// sweepTickMinutes is the resolution of the group sweep.
const sweepTickMinutes = 30

// BusyMember explains why a slot is not perfect: one selected person who
// is unavailable during the slot, with the busy ranges that overlap it.
type BusyMember struct {
	PersonID    string      `json:"person_id"`
	DisplayName string      `json:"display_name"`
	BusyRanges  []TimeRange `json:"busy_ranges"`
}

// GroupSlot is one categorized window produced by the group sweep.
type GroupSlot struct {
	Date          string       `json:"date"`
	StartTime     string       `json:"start_time"`
	EndTime       string       `json:"end_time"`
	DurationHours float64      `json:"duration_hours"`
	Category      SlotCategory `json:"category"`
	BusyMembers   []BusyMember `json:"busy_members,omitempty"`
}

// CategoryFor maps a busy headcount to a slot category. The thresholds
// are absolute, not proportional to the group size: a group of 3 with
// all 3 busy rates ok, the same as a group of 20 with 3 busy.
func CategoryFor(busyCount int) SlotCategory {
	switch {
	case busyCount == 0:
		return CategoryPerfect
	case busyCount <= 2:
		return CategoryGood
	case busyCount <= 4:
		return CategoryOK
	default:
		return CategoryBad
	}
}

// SweepDay walks the workday window in 30-minute ticks and groups
// maximal runs of ticks that share an identical set of busy people into
// categorized slots. A tick counts as busy for a person when it falls
// inside one of their merged busy ranges, boundaries inclusive on both
// ends. Each slot spans from its first tick to the next run's first
// tick; the final run extends to the end of the window.
func SweepDay(date string, window TimeRange, profiles map[string]DailyBusyProfile, names map[string]string) []GroupSlot {
	if !window.Valid() || len(profiles) == 0 {
		return nil
	}

	ids := make([]string, 0, len(profiles))
	for id := range profiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var slots []GroupSlot
	runStart := -1
	var runBusy []string

	flush := func(endTick int) {
		if runStart < 0 {
			return
		}
		slot := GroupSlot{
			Date:          date,
			StartTime:     ToTimeString(runStart),
			EndTime:       ToTimeString(endTick),
			DurationHours: hoursBetween(runStart, endTick),
			Category:      CategoryFor(len(runBusy)),
		}
		for _, id := range runBusy {
			slot.BusyMembers = append(slot.BusyMembers, BusyMember{
				PersonID:    id,
				DisplayName: names[id],
				BusyRanges:  rangesOverlapping(profiles[id].BusyRanges, TimeRange{Start: runStart, End: endTick}),
			})
		}
		slots = append(slots, slot)
	}

	for tick := window.Start; tick < window.End; tick += sweepTickMinutes {
		busy := busyAt(tick, ids, profiles)
		if runStart < 0 {
			runStart, runBusy = tick, busy
			continue
		}
		if !sameIDs(runBusy, busy) {
			flush(tick)
			runStart, runBusy = tick, busy
		}
	}
	flush(window.End)

	return slots
}

// busyAt returns the sorted ids of people busy at the given tick.
func busyAt(tick int, ids []string, profiles map[string]DailyBusyProfile) []string {
	var busy []string
	for _, id := range ids {
		for _, r := range profiles[id].BusyRanges {
			if r.ContainsTick(tick) {
				busy = append(busy, id)
				break
			}
		}
	}
	return busy
}

// sameIDs compares two sorted id lists for equality.
func sameIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// rangesOverlapping returns the ranges that share time with the slot.
// Boundaries are inclusive to match the tick containment test, so a
// range ending exactly at the slot start is still reported.
func rangesOverlapping(ranges []TimeRange, slot TimeRange) []TimeRange {
	var out []TimeRange
	for _, r := range ranges {
		if r.Start <= slot.End && r.End >= slot.Start {
			out = append(out, r)
		}
	}
	return out
}

// hoursBetween converts a minute span to hours, rounded to one decimal
// when fractional.
func hoursBetween(start, end int) float64 {
	return math.Round(float64(end-start)/60*10) / 10
}
