package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidPickupStatus(t *testing.T) {
	for _, status := range []string{
		PickupStatusPending,
		PickupStatusAccepted,
		PickupStatusOnTheWay,
		PickupStatusPicked,
		PickupStatusCompleted,
	} {
		assert.True(t, ValidPickupStatus(status), status)
	}

	assert.False(t, ValidPickupStatus("cancelled"))
	assert.False(t, ValidPickupStatus(""))
}

func TestPickupStatusAdvances(t *testing.T) {
	order := []string{
		PickupStatusPending,
		PickupStatusAccepted,
		PickupStatusOnTheWay,
		PickupStatusPicked,
		PickupStatusCompleted,
	}

	for i, from := range order {
		for j, to := range order {
			expected := j > i
			assert.Equal(t, expected, PickupStatusAdvances(from, to), "%s -> %s", from, to)
		}
	}

	// Skipping forward is a valid advance
	assert.True(t, PickupStatusAdvances(PickupStatusPending, PickupStatusCompleted))

	assert.False(t, PickupStatusAdvances("unknown", PickupStatusAccepted))
	assert.False(t, PickupStatusAdvances(PickupStatusPending, "unknown"))
}
