package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FertVad/rehearsal-calendar-app-sub001/internal/models"
)

func testPeople() []models.Person {
	return []models.Person{
		{ID: "alice", DisplayName: "Alice"},
		{ID: "bob", DisplayName: "Bob"},
	}
}

func TestRecommend_TwoDays(t *testing.T) {
	p := New(DefaultWindow(), 60)

	in := PlanInput{
		StartDate: "2026-03-14",
		EndDate:   "2026-03-15",
		People:    testPeople(),
		Availability: []models.AvailabilityEntry{
			{PersonID: "alice", Date: "2026-03-14", Start: "10:00", End: "12:00", Type: models.AvailabilityBusy},
		},
		Events: []models.Event{
			{ID: "e1", Date: "2026-03-15", Start: "18:00", End: "20:00", ParticipantIDs: []string{"bob"}},
		},
	}

	result, err := p.Recommend(in)
	require.NoError(t, err)
	require.NotEmpty(t, result.Slots)

	grouped := result.GroupByDate()
	require.Len(t, grouped, 2)
	assert.Equal(t, "2026-03-14", grouped[0].Date)
	assert.Equal(t, "2026-03-15", grouped[1].Date)

	for _, day := range grouped {
		// In-day order is chronological.
		prev := ""
		for _, s := range day.Slots {
			assert.Equal(t, day.Date, s.Date)
			assert.Greater(t, s.StartTime, prev)
			prev = s.StartTime
		}
	}
}

func TestRecommend_EmptyPeople(t *testing.T) {
	p := New(DefaultWindow(), 60)

	result, err := p.Recommend(PlanInput{StartDate: "2026-03-14", EndDate: "2026-03-14"})
	require.NoError(t, err)
	assert.Empty(t, result.Slots)
}

func TestRecommend_InvalidDates(t *testing.T) {
	p := New(DefaultWindow(), 60)

	_, err := p.Recommend(PlanInput{StartDate: "14.03.2026", EndDate: "2026-03-15", People: testPeople()})
	assert.Error(t, err)

	_, err = p.Recommend(PlanInput{StartDate: "2026-03-16", EndDate: "2026-03-15", People: testPeople()})
	assert.Error(t, err)
}

func TestRecommend_WindowOverride(t *testing.T) {
	p := New(DefaultWindow(), 60)
	window := TimeRange{Start: 600, End: 720} // 10:00-12:00

	result, err := p.Recommend(PlanInput{
		StartDate: "2026-03-14",
		EndDate:   "2026-03-14",
		People:    testPeople(),
		Window:    &window,
	})
	require.NoError(t, err)
	require.Len(t, result.Slots, 1)
	assert.Equal(t, "10:00", result.Slots[0].StartTime)
	assert.Equal(t, "12:00", result.Slots[0].EndTime)
}

func TestFilterByCategory(t *testing.T) {
	result := &PlanResult{Slots: []GroupSlot{
		{Date: "2026-03-14", StartTime: "09:00", Category: CategoryPerfect},
		{Date: "2026-03-14", StartTime: "10:00", Category: CategoryGood},
		{Date: "2026-03-14", StartTime: "11:00", Category: CategoryBad},
	}}

	// Empty allow-list means no filter, not "return nothing".
	assert.Len(t, result.FilterByCategory(nil), 3)
	assert.Len(t, result.FilterByCategory([]SlotCategory{}), 3)

	perfect := result.FilterByCategory([]SlotCategory{CategoryPerfect})
	require.Len(t, perfect, 1)
	assert.Equal(t, "09:00", perfect[0].StartTime)

	both := result.FilterByCategory([]SlotCategory{CategoryPerfect, CategoryGood})
	assert.Len(t, both, 2)
}

func TestCategoryCounts(t *testing.T) {
	result := &PlanResult{Slots: []GroupSlot{
		{Category: CategoryPerfect},
		{Category: CategoryPerfect},
		{Category: CategoryGood},
		{Category: CategoryBad},
	}}

	counts := result.CategoryCounts()
	assert.Equal(t, 2, counts[CategoryPerfect])
	assert.Equal(t, 1, counts[CategoryGood])
	assert.Equal(t, 0, counts[CategoryOK])
	assert.Equal(t, 1, counts[CategoryBad])

	total := 0
	for _, n := range counts {
		total += n
	}
	assert.Equal(t, len(result.Slots), total)
}

func TestSuggest_ReconcilesBeforeRanking(t *testing.T) {
	p := New(DefaultWindow(), 60)

	availability := []models.AvailabilityEntry{
		// Available entries never constrain.
		{PersonID: "alice", Date: "2026-03-14", Start: "14:00", End: "23:00", Type: models.AvailabilityAvailable},
	}
	events := []models.Event{
		{ID: "e1", Date: "2026-03-14", Start: "14:00", End: "23:00", ParticipantIDs: []string{"bob"}},
	}

	slots := p.Suggest("2026-03-14", testPeople(), availability, events, nil)

	require.Len(t, slots, 1)
	assert.Equal(t, "09:00", slots[0].StartTime)
	assert.Equal(t, "14:00", slots[0].EndTime)
	assert.Equal(t, ConfidenceMedium, slots[0].Confidence)
}

func TestSuggest_ShortCircuits(t *testing.T) {
	p := New(DefaultWindow(), 60)

	assert.Nil(t, p.Suggest("", testPeople(), nil, nil, nil))
	assert.Nil(t, p.Suggest("2026-03-14", nil, nil, nil, nil))
}
