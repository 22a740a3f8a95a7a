package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/FertVad/rehearsal-calendar-app-sub001/internal/database"
	"github.com/FertVad/rehearsal-calendar-app-sub001/internal/service"
)

// HTTPServer exposes the planner and the thin CRUD glue the mobile
// client uses to feed it.
type HTTPServer struct {
	db      *database.DB
	planner *service.PlannerService
	limiter *rate.Limiter
	logger  *zerolog.Logger
	srv     *http.Server
}

func NewHTTPServer(port int, db *database.DB, planner *service.PlannerService, rps float64, burst int, logger *zerolog.Logger) *HTTPServer {
	s := &HTTPServer{
		db:      db,
		planner: planner,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		logger:  logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/people", s.handlePeople)
	mux.HandleFunc("/api/people/", s.handlePersonByID)
	mux.HandleFunc("/api/availability", s.handleAvailability)
	mux.HandleFunc("/api/availability/", s.handleAvailabilityByID)
	mux.HandleFunc("/api/events", s.handleEvents)
	mux.HandleFunc("/api/events/", s.handleEventByID)
	mux.HandleFunc("/api/planner/slots", s.handlePlannerSlots)
	mux.HandleFunc("/api/planner/slots/export", s.handlePlannerExport)
	mux.HandleFunc("/api/planner/suggest", s.handlePlannerSuggest)

	s.srv = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.rateLimit(s.logRequests(mux)),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler returns the configured handler chain, used by tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.srv.Handler
}

// Start serves until the context is cancelled, then shuts down.
func (s *HTTPServer) Start(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = s.srv.Shutdown(ctxShutdown)
	}()

	s.logger.Info().Str("addr", s.srv.Addr).Msg("API server listening")
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *HTTPServer) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *HTTPServer) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("took", time.Since(start)).
			Msg("http request")
	})
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}
