package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryFor(t *testing.T) {
	tests := []struct {
		busyCount int
		expected  SlotCategory
	}{
		{0, CategoryPerfect},
		{1, CategoryGood},
		{2, CategoryGood},
		{3, CategoryOK},
		{4, CategoryOK},
		{5, CategoryBad},
		{12, CategoryBad},
	}

	for _, tt := range tests {
		if got := CategoryFor(tt.busyCount); got != tt.expected {
			t.Errorf("CategoryFor(%d): expected %s, got %s", tt.busyCount, tt.expected, got)
		}
	}
}

func TestCategoryMonotonicity(t *testing.T) {
	severity := map[SlotCategory]int{
		CategoryPerfect: 0,
		CategoryGood:    1,
		CategoryOK:      2,
		CategoryBad:     3,
	}

	prev := severity[CategoryFor(0)]
	for count := 1; count <= 20; count++ {
		cur := severity[CategoryFor(count)]
		if cur < prev {
			t.Fatalf("severity decreased from %d to %d at busy count %d", prev, cur, count)
		}
		prev = cur
	}
}

func profileFor(id string, ranges ...TimeRange) DailyBusyProfile {
	return DailyBusyProfile{PersonID: id, Date: testDate, BusyRanges: MergeRanges(ranges)}
}

func TestSweepDay_FullyFreeDay(t *testing.T) {
	profiles := map[string]DailyBusyProfile{
		"alice": profileFor("alice"),
		"bob":   profileFor("bob"),
	}

	slots := SweepDay(testDate, DefaultWindow(), profiles, map[string]string{"alice": "Alice", "bob": "Bob"})

	require.Len(t, slots, 1)
	assert.Equal(t, "09:00", slots[0].StartTime)
	assert.Equal(t, "23:00", slots[0].EndTime)
	assert.Equal(t, CategoryPerfect, slots[0].Category)
	assert.Equal(t, 14.0, slots[0].DurationHours)
	assert.Empty(t, slots[0].BusyMembers)
}

func TestSweepDay_TouchingRangesAcrossPeople(t *testing.T) {
	// Alice busy 10:00-11:00, Bob busy 11:00-12:00. The ranges touch but
	// never overlap, so every tick between 10:00 and 12:00 rates good.
	profiles := map[string]DailyBusyProfile{
		"alice": profileFor("alice", TimeRange{600, 660}),
		"bob":   profileFor("bob", TimeRange{660, 720}),
	}
	names := map[string]string{"alice": "Alice", "bob": "Bob"}

	slots := SweepDay(testDate, DefaultWindow(), profiles, names)
	require.NotEmpty(t, slots)

	assert.Equal(t, CategoryPerfect, slots[0].Category)
	assert.Equal(t, "09:00", slots[0].StartTime)
	assert.Equal(t, "10:00", slots[0].EndTime)

	for _, s := range slots[1 : len(slots)-1] {
		assert.Equal(t, CategoryGood, s.Category, "slot %s-%s", s.StartTime, s.EndTime)
	}

	last := slots[len(slots)-1]
	assert.Equal(t, CategoryPerfect, last.Category)
	assert.Equal(t, "23:00", last.EndTime)

	// Runs must cover the window without gaps.
	cursor := "09:00"
	for _, s := range slots {
		assert.Equal(t, cursor, s.StartTime)
		cursor = s.EndTime
	}
	assert.Equal(t, "23:00", cursor)
}

func TestSweepDay_InclusiveEndBoundary(t *testing.T) {
	// A range ending exactly on a tick keeps that tick busy.
	profiles := map[string]DailyBusyProfile{
		"alice": profileFor("alice", TimeRange{600, 660}),
	}

	slots := SweepDay(testDate, DefaultWindow(), profiles, map[string]string{"alice": "Alice"})

	require.Len(t, slots, 3)
	assert.Equal(t, "10:00", slots[1].StartTime)
	assert.Equal(t, "11:30", slots[1].EndTime, "tick at 11:00 is still busy (inclusive end)")
	assert.Equal(t, CategoryGood, slots[1].Category)
	require.Len(t, slots[1].BusyMembers, 1)
	assert.Equal(t, "Alice", slots[1].BusyMembers[0].DisplayName)
	assert.Equal(t, []TimeRange{{600, 660}}, slots[1].BusyMembers[0].BusyRanges)
}

func TestSweepDay_ThresholdsAreAbsolute(t *testing.T) {
	// Three of three busy is ok, not bad: thresholds do not scale with
	// group size.
	busy := TimeRange{600, 720}
	profiles := map[string]DailyBusyProfile{
		"a": profileFor("a", busy),
		"b": profileFor("b", busy),
		"c": profileFor("c", busy),
	}
	names := map[string]string{"a": "A", "b": "B", "c": "C"}

	slots := SweepDay(testDate, DefaultWindow(), profiles, names)

	var found bool
	for _, s := range slots {
		if s.StartTime == "10:00" {
			found = true
			assert.Equal(t, CategoryOK, s.Category)
			assert.Len(t, s.BusyMembers, 3)
		}
	}
	require.True(t, found, "expected a slot starting at 10:00")
}

func TestSweepDay_FiveBusyIsBad(t *testing.T) {
	busy := TimeRange{600, 720}
	profiles := make(map[string]DailyBusyProfile)
	names := make(map[string]string)
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		profiles[id] = profileFor(id, busy)
		names[id] = id
	}

	slots := SweepDay(testDate, DefaultWindow(), profiles, names)

	var categories []SlotCategory
	for _, s := range slots {
		categories = append(categories, s.Category)
	}
	assert.Contains(t, categories, CategoryBad)
}

func TestSweepDay_EmptySelection(t *testing.T) {
	assert.Nil(t, SweepDay(testDate, DefaultWindow(), nil, nil))
}
