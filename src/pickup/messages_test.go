package pickup

import (
	"testing"

	"github.com/ecopickup/backend/src/utils/model"

	"github.com/stretchr/testify/assert"
)

func TestEveryReachableStatusHasNotification(t *testing.T) {
	// Pending is never the target of a transition, every other status
	// must message the requester
	reachable := []string{
		model.PickupStatusAccepted,
		model.PickupStatusOnTheWay,
		model.PickupStatusPicked,
		model.PickupStatusCompleted,
	}

	for _, status := range reachable {
		notification, ok := NotificationForStatus(status)
		assert.True(t, ok, status)
		assert.NotEmpty(t, notification.Message, status)
		assert.Equal(t, model.NotificationTypeSuccess, notification.Type, status)
	}

	_, ok := NotificationForStatus(model.PickupStatusPending)
	assert.False(t, ok)
}

func TestStatusMessages(t *testing.T) {
	expected := map[string]string{
		model.PickupStatusAccepted:  "Your pickup has been accepted",
		model.PickupStatusOnTheWay:  "Agent is on the way to pick up your item",
		model.PickupStatusPicked:    "Your item has been picked up",
		model.PickupStatusCompleted: "Pickup completed successfully",
	}

	for status, message := range expected {
		notification, ok := NotificationForStatus(status)
		assert.True(t, ok, status)
		assert.Equal(t, message, notification.Message)
	}
}
