package planner

import (
	"github.com/FertVad/rehearsal-calendar-app-sub001/internal/models"
)

// DailyBusyProfile is the authoritative busy timeline for one person on
// one date, built from manual availability entries and scheduled events.
// BusyRanges is always merged: sorted, non-overlapping, non-touching.
// An empty list means the person is fully free that day.
type DailyBusyProfile struct {
	PersonID   string
	Date       string
	BusyRanges []TimeRange
}

// BuildBusyProfiles reconciles manual availability with scheduled events
// for every selected person on the given date.
//
// Manual entries of type available are discarded before the union; only
// busy and tentative entries constrain scheduling. An event with no
// explicit end is zero-duration and therefore non-blocking. Records with
// malformed times or inverted ranges are dropped individually so one bad
// record from one person never fails the whole group.
func BuildBusyProfiles(date string, personIDs []string, entries []models.AvailabilityEntry, events []models.Event) map[string]DailyBusyProfile {
	profiles := make(map[string]DailyBusyProfile, len(personIDs))

	for _, id := range personIDs {
		var ranges []TimeRange

		for _, entry := range entries {
			if entry.PersonID != id || entry.Date != date {
				continue
			}
			if !entry.Type.Blocks() {
				continue
			}
			r, err := ParseRange(entry.Start, entry.End)
			if err != nil || !r.Valid() {
				continue
			}
			ranges = append(ranges, r)
		}

		for _, ev := range events {
			if ev.Date != date || !ev.Includes(id) {
				continue
			}
			if ev.End == "" {
				// No explicit end: zero-duration, non-blocking.
				continue
			}
			r, err := ParseRange(ev.Start, ev.End)
			if err != nil || !r.Valid() {
				continue
			}
			ranges = append(ranges, r)
		}

		profiles[id] = DailyBusyProfile{
			PersonID:   id,
			Date:       date,
			BusyRanges: MergeRanges(ranges),
		}
	}

	return profiles
}

// UnionProfiles merges the busy ranges of all given profiles into a
// single group timeline.
func UnionProfiles(profiles map[string]DailyBusyProfile) []TimeRange {
	var all []TimeRange
	for _, p := range profiles {
		all = append(all, p.BusyRanges...)
	}
	return MergeRanges(all)
}
