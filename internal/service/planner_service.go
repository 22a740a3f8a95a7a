package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/FertVad/rehearsal-calendar-app-sub001/internal/cache"
	"github.com/FertVad/rehearsal-calendar-app-sub001/internal/metrics"
	"github.com/FertVad/rehearsal-calendar-app-sub001/internal/models"
	"github.com/FertVad/rehearsal-calendar-app-sub001/internal/planner"
)

// Store is the slice of the database the planner service reads.
type Store interface {
	GetPeopleByIDs(ctx context.Context, ids []string) ([]models.Person, error)
	ListAvailabilityInRange(ctx context.Context, from, to string) ([]models.AvailabilityEntry, error)
	ListEventsInRange(ctx context.Context, from, to string) ([]models.Event, error)
}

// PlannerService fetches raw availability and event data, feeds the
// pure engine and optionally memoizes responses in Redis.
type PlannerService struct {
	store        Store
	planner      *planner.Planner
	cache        *cache.PlannerCache
	maxRangeDays int
	logger       *zerolog.Logger
}

func NewPlannerService(store Store, p *planner.Planner, c *cache.PlannerCache, maxRangeDays int, logger *zerolog.Logger) *PlannerService {
	if maxRangeDays <= 0 {
		maxRangeDays = 90
	}
	return &PlannerService{
		store:        store,
		planner:      p,
		cache:        c,
		maxRangeDays: maxRangeDays,
		logger:       logger,
	}
}

// RecommendRequest selects the people and dates to plan for. Categories
// filters the flat slot list; an empty list returns everything.
type RecommendRequest struct {
	StartDate  string                 `json:"start_date"`
	EndDate    string                 `json:"end_date"`
	PersonIDs  []string               `json:"person_ids"`
	Categories []planner.SlotCategory `json:"categories,omitempty"`
	Window     *WindowOverride        `json:"window,omitempty"`
}

// WindowOverride narrows the workday window for one request.
type WindowOverride struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// RecommendResponse carries the flat filtered slots, the date-grouped
// view and the per-category totals over the unfiltered set.
type RecommendResponse struct {
	Slots  []planner.GroupSlot          `json:"slots"`
	Dates  []planner.DateSlots          `json:"dates"`
	Counts map[planner.SlotCategory]int `json:"counts"`
}

// Recommend runs the multi-day group sweep for the request.
func (s *PlannerService) Recommend(ctx context.Context, req RecommendRequest) (*RecommendResponse, error) {
	window, windowKey, err := s.resolveWindow(req.Window)
	if err != nil {
		return nil, err
	}
	if err := s.validateRange(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	key := cache.Key("recommend", req.StartDate, req.EndDate, req.PersonIDs, windowKey)
	var cached RecommendResponse
	if s.cache.Get(ctx, key, &cached) {
		metrics.IncCacheHit()
		return &RecommendResponse{
			Slots:  filterCached(&cached, req.Categories),
			Dates:  cached.Dates,
			Counts: cached.Counts,
		}, nil
	}
	metrics.IncCacheMiss()

	people, availability, events, err := s.loadInputs(ctx, req.StartDate, req.EndDate, req.PersonIDs)
	if err != nil {
		return nil, err
	}

	result, err := s.planner.Recommend(planner.PlanInput{
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		People:       people,
		Availability: availability,
		Events:       events,
		Window:       window,
	})
	if err != nil {
		return nil, err
	}

	counts := result.CategoryCounts()
	for category, n := range counts {
		metrics.AddSlotsComputed(string(category), n)
	}

	full := &RecommendResponse{
		Slots:  result.Slots,
		Dates:  result.GroupByDate(),
		Counts: counts,
	}
	s.cache.Set(ctx, key, full)

	s.logger.Debug().
		Str("start", req.StartDate).
		Str("end", req.EndDate).
		Int("people", len(people)).
		Int("slots", len(result.Slots)).
		Msg("planner recommendation computed")

	return &RecommendResponse{
		Slots:  result.FilterByCategory(req.Categories),
		Dates:  full.Dates,
		Counts: counts,
	}, nil
}

// Suggest runs the single-day ranker for the date.
func (s *PlannerService) Suggest(ctx context.Context, date string, personIDs []string, override *WindowOverride) ([]planner.SuggestedSlot, error) {
	window, windowKey, err := s.resolveWindow(override)
	if err != nil {
		return nil, err
	}
	if err := s.validateRange(date, date); err != nil {
		return nil, err
	}

	key := cache.Key("suggest", date, date, personIDs, windowKey)
	var cached []planner.SuggestedSlot
	if s.cache.Get(ctx, key, &cached) {
		metrics.IncCacheHit()
		return cached, nil
	}
	metrics.IncCacheMiss()

	people, availability, events, err := s.loadInputs(ctx, date, date, personIDs)
	if err != nil {
		return nil, err
	}

	slots := s.planner.Suggest(date, people, availability, events, window)
	s.cache.Set(ctx, key, slots)
	return slots, nil
}

// Invalidate drops memoized responses after a write.
func (s *PlannerService) Invalidate(ctx context.Context) {
	s.cache.InvalidateAll(ctx)
}

func (s *PlannerService) loadInputs(ctx context.Context, from, to string, personIDs []string) ([]models.Person, []models.AvailabilityEntry, []models.Event, error) {
	people, err := s.store.GetPeopleByIDs(ctx, personIDs)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load people: %w", err)
	}
	availability, err := s.store.ListAvailabilityInRange(ctx, from, to)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load availability: %w", err)
	}
	events, err := s.store.ListEventsInRange(ctx, from, to)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load events: %w", err)
	}
	return people, availability, events, nil
}

func (s *PlannerService) resolveWindow(override *WindowOverride) (*planner.TimeRange, string, error) {
	if override == nil {
		return nil, "default", nil
	}
	window, err := planner.ParseRange(override.Start, override.End)
	if err != nil {
		return nil, "", fmt.Errorf("invalid window: %w", err)
	}
	if !window.Valid() {
		return nil, "", fmt.Errorf("invalid window: start must be before end")
	}
	return &window, window.String(), nil
}

func (s *PlannerService) validateRange(start, end string) error {
	if start == "" || end == "" {
		return fmt.Errorf("start_date and end_date are required")
	}
	from, err := time.Parse("2006-01-02", start)
	if err != nil {
		return fmt.Errorf("invalid start_date format; expected YYYY-MM-DD")
	}
	to, err := time.Parse("2006-01-02", end)
	if err != nil {
		return fmt.Errorf("invalid end_date format; expected YYYY-MM-DD")
	}
	if from.After(to) {
		return fmt.Errorf("start_date must be before or equal to end_date")
	}
	if days := int(to.Sub(from).Hours() / 24); days > s.maxRangeDays {
		return fmt.Errorf("date range exceeds maximum of %d days", s.maxRangeDays)
	}
	return nil
}

// filterCached reapplies the category filter to a cached full response.
func filterCached(resp *RecommendResponse, categories []planner.SlotCategory) []planner.GroupSlot {
	result := planner.PlanResult{Slots: resp.Slots}
	return result.FilterByCategory(categories)
}
