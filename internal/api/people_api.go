package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/FertVad/rehearsal-calendar-app-sub001/internal/database"
	"github.com/FertVad/rehearsal-calendar-app-sub001/internal/metrics"
	"github.com/FertVad/rehearsal-calendar-app-sub001/internal/models"
)

// handlePeople lists or creates group members.
// GET|POST /api/people
func (s *HTTPServer) handlePeople(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("people")

	switch r.Method {
	case http.MethodGet:
		people, err := s.db.ListPeople(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to list people")
			return
		}
		writeJSON(w, http.StatusOK, struct {
			People []models.Person `json:"people"`
		}{People: people})

	case http.MethodPost:
		var p models.Person
		if !decodeBody(w, r, &p) {
			return
		}
		if p.DisplayName == "" {
			writeError(w, http.StatusBadRequest, "display_name is required")
			return
		}
		if err := s.db.CreatePerson(r.Context(), &p); err != nil {
			writeError(w, http.StatusInternalServerError, "failed to create person")
			return
		}
		writeJSON(w, http.StatusCreated, p)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handlePersonByID reads or deletes one member.
// GET|DELETE /api/people/{id}
func (s *HTTPServer) handlePersonByID(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("person_by_id")

	id := strings.TrimPrefix(r.URL.Path, "/api/people/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "person id is required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		p, err := s.db.GetPerson(r.Context(), id)
		if errors.Is(err, database.ErrNotFound) {
			writeError(w, http.StatusNotFound, "person not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to load person")
			return
		}
		writeJSON(w, http.StatusOK, p)

	case http.MethodDelete:
		err := s.db.DeletePerson(r.Context(), id)
		if errors.Is(err, database.ErrNotFound) {
			writeError(w, http.StatusNotFound, "person not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to delete person")
			return
		}
		s.planner.Invalidate(r.Context())
		w.WriteHeader(http.StatusNoContent)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleAvailability creates a manual availability entry.
// POST /api/availability
func (s *HTTPServer) handleAvailability(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("availability")

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed; use POST")
		return
	}

	var e models.AvailabilityEntry
	if !decodeBody(w, r, &e) {
		return
	}
	if e.PersonID == "" || e.Date == "" || e.Start == "" || e.End == "" {
		writeError(w, http.StatusBadRequest, "person_id, date, start and end are required")
		return
	}
	if !e.Type.Valid() {
		writeError(w, http.StatusBadRequest, "type must be available, busy or tentative")
		return
	}

	if err := s.db.CreateAvailability(r.Context(), &e); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create availability entry")
		return
	}
	s.planner.Invalidate(r.Context())
	writeJSON(w, http.StatusCreated, e)
}

// handleAvailabilityByID deletes an entry.
// DELETE /api/availability/{id}
func (s *HTTPServer) handleAvailabilityByID(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("availability_by_id")

	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed; use DELETE")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/availability/")
	err := s.db.DeleteAvailability(r.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		writeError(w, http.StatusNotFound, "availability entry not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete availability entry")
		return
	}
	s.planner.Invalidate(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// handleEvents creates a scheduled event.
// POST /api/events
func (s *HTTPServer) handleEvents(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("events")

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed; use POST")
		return
	}

	var e models.Event
	if !decodeBody(w, r, &e) {
		return
	}
	if e.Date == "" || e.Start == "" {
		writeError(w, http.StatusBadRequest, "date and start are required")
		return
	}

	if err := s.db.CreateEvent(r.Context(), &e); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create event")
		return
	}
	s.planner.Invalidate(r.Context())
	writeJSON(w, http.StatusCreated, e)
}

// handleEventByID deletes an event.
// DELETE /api/events/{id}
func (s *HTTPServer) handleEventByID(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("event_by_id")

	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed; use DELETE")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/events/")
	err := s.db.DeleteEvent(r.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		writeError(w, http.StatusNotFound, "event not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete event")
		return
	}
	s.planner.Invalidate(r.Context())
	w.WriteHeader(http.StatusNoContent)
}
