package models

// AvailabilityType classifies a manually declared availability entry.
type AvailabilityType string

const (
	AvailabilityAvailable AvailabilityType = "available"
	AvailabilityBusy      AvailabilityType = "busy"
	AvailabilityTentative AvailabilityType = "tentative"
)

// Blocks reports whether an entry of this type constrains scheduling.
// Available entries only document free time that the absence of a busy
// range already implies.
func (t AvailabilityType) Blocks() bool {
	return t == AvailabilityBusy || t == AvailabilityTentative
}

// Valid reports whether the type is one of the known values.
func (t AvailabilityType) Valid() bool {
	switch t {
	case AvailabilityAvailable, AvailabilityBusy, AvailabilityTentative:
		return true
	}
	return false
}

// Person is a member of the group. Identity is by ID; the display name
// is presentational only.
type Person struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// AvailabilityEntry is a manually declared time range for one person on
// one date. Times are local "HH:MM" strings, dates are "YYYY-MM-DD".
type AvailabilityEntry struct {
	ID       string           `json:"id"`
	PersonID string           `json:"person_id"`
	Date     string           `json:"date"`
	Start    string           `json:"start"`
	End      string           `json:"end"`
	Type     AvailabilityType `json:"type"`
}

// Event is a scheduled occurrence on one date. An event with an empty
// End has no explicit end time and is treated as zero-duration, which
// makes it non-blocking for availability purposes.
type Event struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Date           string   `json:"date"`
	Start          string   `json:"start"`
	End            string   `json:"end,omitempty"`
	ParticipantIDs []string `json:"participant_ids"`
}

// Includes reports whether the person is a participant of the event.
func (e *Event) Includes(personID string) bool {
	for _, id := range e.ParticipantIDs {
		if id == personID {
			return true
		}
	}
	return false
}
