package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/FertVad/rehearsal-calendar-app-sub001/internal/export"
	"github.com/FertVad/rehearsal-calendar-app-sub001/internal/metrics"
	"github.com/FertVad/rehearsal-calendar-app-sub001/internal/service"
)

// handlePlannerSlots returns categorized group slots for a date range.
// POST /api/planner/slots
func (s *HTTPServer) handlePlannerSlots(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("planner_slots")

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed; use POST")
		return
	}

	var req service.RecommendRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := s.planner.Recommend(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handlePlannerSuggest returns the single-day best-slot ranking.
// POST /api/planner/suggest
func (s *HTTPServer) handlePlannerSuggest(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("planner_suggest")

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed; use POST")
		return
	}

	var req struct {
		Date      string                  `json:"date"`
		PersonIDs []string                `json:"person_ids"`
		Window    *service.WindowOverride `json:"window,omitempty"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Date == "" {
		writeError(w, http.StatusBadRequest, "date is required")
		return
	}

	slots, err := s.planner.Suggest(r.Context(), req.Date, req.PersonIDs, req.Window)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp := struct {
		Date  string `json:"date"`
		Slots any    `json:"slots"`
	}{Date: req.Date, Slots: slots}
	writeJSON(w, http.StatusOK, resp)
}

// handlePlannerExport streams the recommendation as an Excel workbook.
// POST /api/planner/slots/export
func (s *HTTPServer) handlePlannerExport(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("planner_export")

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed; use POST")
		return
	}

	var req service.RecommendRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := s.planner.Recommend(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	filename := fmt.Sprintf("smart-planner_%s.xlsx", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := export.WriteSlots(w, resp.Dates); err != nil {
		s.logger.Error().Err(err).Msg("export failed")
	}
}
