package pickup

import (
	"github.com/ecopickup/backend/src/utils/model"
)

// StatusNotification is the user facing message emitted for a status change
type StatusNotification struct {
	Message string
	Type    string
}

// statusNotifications maps every non-initial pickup status to the
// notification it triggers for the requester. Pending is excluded on
// purpose, creation is operational signaling, not a user notification.
var statusNotifications = map[string]StatusNotification{
	model.PickupStatusAccepted: {
		Message: "Your pickup has been accepted",
		Type:    model.NotificationTypeSuccess,
	},
	model.PickupStatusOnTheWay: {
		Message: "Agent is on the way to pick up your item",
		Type:    model.NotificationTypeSuccess,
	},
	model.PickupStatusPicked: {
		Message: "Your item has been picked up",
		Type:    model.NotificationTypeSuccess,
	},
	model.PickupStatusCompleted: {
		Message: "Pickup completed successfully",
		Type:    model.NotificationTypeSuccess,
	},
}

// NotificationForStatus returns the notification content for a status
// change, if that status notifies the requester at all.
func NotificationForStatus(status string) (notification StatusNotification, ok bool) {
	notification, ok = statusNotifications[status]
	return
}
