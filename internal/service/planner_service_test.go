package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FertVad/rehearsal-calendar-app-sub001/internal/cache"
	"github.com/FertVad/rehearsal-calendar-app-sub001/internal/models"
	"github.com/FertVad/rehearsal-calendar-app-sub001/internal/planner"
)

type fakeStore struct {
	people       []models.Person
	availability []models.AvailabilityEntry
	events       []models.Event
}

func (f *fakeStore) GetPeopleByIDs(_ context.Context, ids []string) ([]models.Person, error) {
	byID := make(map[string]models.Person, len(f.people))
	for _, p := range f.people {
		byID[p.ID] = p
	}
	var out []models.Person
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStore) ListAvailabilityInRange(_ context.Context, from, to string) ([]models.AvailabilityEntry, error) {
	var out []models.AvailabilityEntry
	for _, e := range f.availability {
		if e.Date >= from && e.Date <= to {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeStore) ListEventsInRange(_ context.Context, from, to string) ([]models.Event, error) {
	var out []models.Event
	for _, e := range f.events {
		if e.Date >= from && e.Date <= to {
			out = append(out, e)
		}
	}
	return out, nil
}

func newTestService(store *fakeStore) *PlannerService {
	logger := zerolog.Nop()
	engine := planner.New(planner.DefaultWindow(), 60)
	return NewPlannerService(store, engine, cache.New(nil, 0), 90, &logger)
}

func TestRecommend_EndToEnd(t *testing.T) {
	store := &fakeStore{
		people: []models.Person{
			{ID: "alice", DisplayName: "Alice"},
			{ID: "bob", DisplayName: "Bob"},
		},
		availability: []models.AvailabilityEntry{
			{PersonID: "alice", Date: "2026-03-14", Start: "10:00", End: "12:00", Type: models.AvailabilityBusy},
		},
	}
	svc := newTestService(store)

	resp, err := svc.Recommend(context.Background(), RecommendRequest{
		StartDate: "2026-03-14",
		EndDate:   "2026-03-14",
		PersonIDs: []string{"alice", "bob"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Slots)

	require.Len(t, resp.Dates, 1)
	assert.Equal(t, "2026-03-14", resp.Dates[0].Date)

	total := 0
	for _, n := range resp.Counts {
		total += n
	}
	assert.Equal(t, len(resp.Slots), total)

	assert.Positive(t, resp.Counts[planner.CategoryGood], "Alice's busy block should produce good slots")
}

func TestRecommend_CategoryFilter(t *testing.T) {
	store := &fakeStore{
		people: []models.Person{{ID: "alice", DisplayName: "Alice"}},
		availability: []models.AvailabilityEntry{
			{PersonID: "alice", Date: "2026-03-14", Start: "10:00", End: "12:00", Type: models.AvailabilityBusy},
		},
	}
	svc := newTestService(store)

	resp, err := svc.Recommend(context.Background(), RecommendRequest{
		StartDate:  "2026-03-14",
		EndDate:    "2026-03-14",
		PersonIDs:  []string{"alice"},
		Categories: []planner.SlotCategory{planner.CategoryPerfect},
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Slots)
	for _, s := range resp.Slots {
		assert.Equal(t, planner.CategoryPerfect, s.Category)
	}

	// Counts stay unfiltered.
	assert.Positive(t, resp.Counts[planner.CategoryGood])
}

func TestRecommend_Validation(t *testing.T) {
	svc := newTestService(&fakeStore{})
	ctx := context.Background()

	_, err := svc.Recommend(ctx, RecommendRequest{EndDate: "2026-03-14"})
	assert.Error(t, err)

	_, err = svc.Recommend(ctx, RecommendRequest{StartDate: "2026/03/14", EndDate: "2026-03-14"})
	assert.Error(t, err)

	_, err = svc.Recommend(ctx, RecommendRequest{StartDate: "2026-03-15", EndDate: "2026-03-14"})
	assert.Error(t, err)

	_, err = svc.Recommend(ctx, RecommendRequest{StartDate: "2026-01-01", EndDate: "2026-12-31"})
	assert.Error(t, err, "range over the 90-day cap must be rejected")

	_, err = svc.Recommend(ctx, RecommendRequest{
		StartDate: "2026-03-14",
		EndDate:   "2026-03-14",
		Window:    &WindowOverride{Start: "12:00", End: "10:00"},
	})
	assert.Error(t, err, "inverted window must be rejected")
}

func TestSuggest_EndToEnd(t *testing.T) {
	store := &fakeStore{
		people: []models.Person{
			{ID: "alice", DisplayName: "Alice"},
			{ID: "bob", DisplayName: "Bob"},
		},
		events: []models.Event{
			{ID: "e1", Date: "2026-03-14", Start: "14:00", End: "23:00", ParticipantIDs: []string{"bob"}},
		},
	}
	svc := newTestService(store)

	slots, err := svc.Suggest(context.Background(), "2026-03-14", []string{"alice", "bob"}, nil)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, "09:00", slots[0].StartTime)
	assert.Equal(t, "14:00", slots[0].EndTime)
	assert.Equal(t, planner.ConfidenceMedium, slots[0].Confidence)
}

func TestSuggest_WindowOverride(t *testing.T) {
	store := &fakeStore{
		people: []models.Person{{ID: "alice", DisplayName: "Alice"}},
	}
	svc := newTestService(store)

	slots, err := svc.Suggest(context.Background(), "2026-03-14", []string{"alice"}, &WindowOverride{Start: "10:00", End: "12:00"})
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, "10:00", slots[0].StartTime)
	assert.Equal(t, "12:00", slots[0].EndTime)
	assert.Equal(t, planner.ConfidenceHigh, slots[0].Confidence)
}
