package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAvailabilityTypeBlocks(t *testing.T) {
	assert.False(t, AvailabilityAvailable.Blocks())
	assert.True(t, AvailabilityBusy.Blocks())
	assert.True(t, AvailabilityTentative.Blocks())
	assert.False(t, AvailabilityType("whatever").Blocks())
}

func TestAvailabilityTypeValid(t *testing.T) {
	assert.True(t, AvailabilityAvailable.Valid())
	assert.True(t, AvailabilityBusy.Valid())
	assert.True(t, AvailabilityTentative.Valid())
	assert.False(t, AvailabilityType("").Valid())
	assert.False(t, AvailabilityType("free").Valid())
}

func TestEventIncludes(t *testing.T) {
	e := Event{ParticipantIDs: []string{"alice", "bob"}}

	assert.True(t, e.Includes("alice"))
	assert.True(t, e.Includes("bob"))
	assert.False(t, e.Includes("carol"))

	empty := Event{}
	assert.False(t, empty.Includes("alice"))
}
