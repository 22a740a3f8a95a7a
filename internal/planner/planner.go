// Package planner implements the Smart Planner engine: availability
// aggregation and free-slot recommendation for a group. It is pure
// computation over already-fetched data; callers fetch availability and
// events first and may invoke the engine concurrently without locking.
package planner

import (
	"fmt"
	"time"

	"github.com/FertVad/rehearsal-calendar-app-sub001/internal/models"
)

const dateLayout = "2006-01-02"

// DefaultWindow is the workday window slots are clipped to when the
// caller does not override it.
func DefaultWindow() TimeRange {
	return TimeRange{Start: 9 * 60, End: 23 * 60}
}

// Planner orchestrates reconciliation, the group sweep and the
// single-day ranker over date ranges.
type Planner struct {
	window         TimeRange
	minSlotMinutes int
}

// New creates a planner. A zero window or non-positive minimum slot
// duration falls back to the defaults (09:00-23:00, 60 minutes).
func New(window TimeRange, minSlotMinutes int) *Planner {
	if !window.Valid() {
		window = DefaultWindow()
	}
	if minSlotMinutes <= 0 {
		minSlotMinutes = DefaultMinSlotMinutes
	}
	return &Planner{window: window, minSlotMinutes: minSlotMinutes}
}

// Window returns the effective workday window.
func (p *Planner) Window() TimeRange {
	return p.window
}

// PlanInput carries everything a multi-day recommendation needs. The
// availability and event lists may span more dates than the requested
// range; the planner picks per-date records itself.
type PlanInput struct {
	StartDate    string
	EndDate      string
	People       []models.Person
	Availability []models.AvailabilityEntry
	Events       []models.Event
	Window       *TimeRange // optional per-request override
}

// PlanResult is the date-ordered slot set for one recommendation run.
type PlanResult struct {
	Slots []GroupSlot `json:"slots"`

	dates []string
}

// DateSlots groups one date's slots, preserving in-day order.
type DateSlots struct {
	Date  string      `json:"date"`
	Slots []GroupSlot `json:"slots"`
}

// Recommend runs the group sweep for every date in the inclusive range.
// An empty people list yields an empty, non-error result.
func (p *Planner) Recommend(in PlanInput) (*PlanResult, error) {
	start, err := time.Parse(dateLayout, in.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q; expected YYYY-MM-DD", in.StartDate)
	}
	end, err := time.Parse(dateLayout, in.EndDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q; expected YYYY-MM-DD", in.EndDate)
	}
	if start.After(end) {
		return nil, fmt.Errorf("start date must be before or equal to end date")
	}

	result := &PlanResult{}
	if len(in.People) == 0 {
		return result, nil
	}

	window := p.window
	if in.Window != nil && in.Window.Valid() {
		window = *in.Window
	}

	ids := make([]string, len(in.People))
	names := make(map[string]string, len(in.People))
	for i, person := range in.People {
		ids[i] = person.ID
		names[person.ID] = person.DisplayName
	}

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		date := d.Format(dateLayout)
		profiles := BuildBusyProfiles(date, ids, in.Availability, in.Events)
		result.Slots = append(result.Slots, SweepDay(date, window, profiles, names)...)
		result.dates = append(result.dates, date)
	}
	return result, nil
}

// Suggest runs the single-day ranker: reconcile each selected person,
// union the group timeline and rank the free gaps.
func (p *Planner) Suggest(date string, people []models.Person, availability []models.AvailabilityEntry, events []models.Event, window *TimeRange) []SuggestedSlot {
	if date == "" || len(people) == 0 {
		return nil
	}

	w := p.window
	if window != nil && window.Valid() {
		w = *window
	}

	ids := make([]string, len(people))
	for i, person := range people {
		ids[i] = person.ID
	}
	profiles := BuildBusyProfiles(date, ids, availability, events)

	busyByPerson := make(map[string][]TimeRange, len(profiles))
	for id, profile := range profiles {
		busyByPerson[id] = profile.BusyRanges
	}
	return SuggestBestSlots(date, people, busyByPerson, w, p.minSlotMinutes)
}

// FilterByCategory retains slots whose category is in the allow-list.
// An empty allow-list means no filter: every slot is returned.
func (r *PlanResult) FilterByCategory(allowed []SlotCategory) []GroupSlot {
	if len(allowed) == 0 {
		return r.Slots
	}
	keep := make(map[SlotCategory]bool, len(allowed))
	for _, c := range allowed {
		keep[c] = true
	}
	var out []GroupSlot
	for _, s := range r.Slots {
		if keep[s.Category] {
			out = append(out, s)
		}
	}
	return out
}

// GroupByDate returns the slots grouped per date in the order the dates
// were processed, which is chronological.
func (r *PlanResult) GroupByDate() []DateSlots {
	byDate := make(map[string][]GroupSlot, len(r.dates))
	for _, s := range r.Slots {
		byDate[s.Date] = append(byDate[s.Date], s)
	}
	var out []DateSlots
	for _, date := range r.dates {
		out = append(out, DateSlots{Date: date, Slots: byDate[date]})
	}
	return out
}

// CategoryCounts tallies the whole unfiltered result set per category.
func (r *PlanResult) CategoryCounts() map[SlotCategory]int {
	counts := make(map[SlotCategory]int)
	for _, s := range r.Slots {
		counts[s.Category]++
	}
	return counts
}
