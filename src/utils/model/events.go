package model

import (
	"encoding/json"
)

// Event names pushed over the realtime transport
const (
	EventNewPickupAvailable = "new-pickup-available"
	EventPickupUpdated      = "pickup-updated"
	EventAdminPickupUpdated = "admin-pickup-updated"
	EventNotification       = "notification"

	// Logical channel that reaches every connected session
	ChannelGlobal = "global"
)

// UserChannel is the logical per-user channel name a session joins after
// declaring its identity.
func UserChannel(userId string) string {
	return "user-" + userId
}

type NewPickupAvailableEvent struct {
	PickupId string `json:"pickupId"`
	ItemId   string `json:"itemId"`
}

func (self *NewPickupAvailableEvent) MarshalBinary() (data []byte, err error) {
	return json.Marshal(self)
}

type PickupUpdatedEvent struct {
	PickupId string `json:"pickupId"`
	Status   string `json:"status"`
	AgentId  string `json:"agentId,omitempty"`
}

func (self *PickupUpdatedEvent) MarshalBinary() (data []byte, err error) {
	return json.Marshal(self)
}

type AdminPickupUpdatedEvent struct {
	PickupId string `json:"pickupId"`
	Status   string `json:"status"`
}

func (self *AdminPickupUpdatedEvent) MarshalBinary() (data []byte, err error) {
	return json.Marshal(self)
}

type NotificationEvent struct {
	NotificationId string `json:"notificationId"`
	Message        string `json:"message"`
	Type           string `json:"type"`
	RelatedId      string `json:"relatedId,omitempty"`
	RelatedType    string `json:"relatedType,omitempty"`
}

func (self *NotificationEvent) MarshalBinary() (data []byte, err error) {
	return json.Marshal(self)
}

// RealtimeMessage is an event bound to a logical channel, as forwarded to
// the Redis mirror.
type RealtimeMessage struct {
	Channel string          `json:"channel"`
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

func (self *RealtimeMessage) MarshalBinary() (data []byte, err error) {
	return json.Marshal(self)
}
