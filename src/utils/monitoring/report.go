package monitoring

import (
	"go.uber.org/atomic"
)

type RunReport struct {
	StartTimestamp atomic.Int64 `json:"start_timestamp"`
	UpForSeconds   atomic.Int64 `json:"up_for_seconds"`
}

type ApiErrors struct {
	BadRequest   atomic.Uint64 `json:"bad_request"`
	Unauthorized atomic.Uint64 `json:"unauthorized"`
	Forbidden    atomic.Uint64 `json:"forbidden"`
	NotFound     atomic.Uint64 `json:"not_found"`
	Conflict     atomic.Uint64 `json:"conflict"`
	Internal     atomic.Uint64 `json:"internal"`
}

type ApiState struct {
	RequestsServed atomic.Uint64 `json:"requests_served"`
}

type ApiReport struct {
	State  ApiState  `json:"state"`
	Errors ApiErrors `json:"errors"`
}

type PickupErrors struct {
	AcceptConflicts    atomic.Uint64 `json:"accept_conflicts"`
	InvalidTransitions atomic.Uint64 `json:"invalid_transitions"`
	DbError            atomic.Uint64 `json:"db"`
}

type PickupState struct {
	PickupsCreated                 atomic.Uint64  `json:"pickups_created"`
	PickupsAccepted                atomic.Uint64  `json:"pickups_accepted"`
	PickupsCompleted               atomic.Uint64  `json:"pickups_completed"`
	StatusUpdates                  atomic.Uint64  `json:"status_updates"`
	NotificationsSaved             atomic.Uint64  `json:"notifications_saved"`
	AveragePickupsCreatedPerMinute atomic.Float64 `json:"average_pickups_created_per_minute"`
}

type PickupReport struct {
	State  PickupState  `json:"state"`
	Errors PickupErrors `json:"errors"`
}

type RealtimeState struct {
	SessionsActive  atomic.Int64  `json:"sessions_active"`
	SessionsJoined  atomic.Uint64 `json:"sessions_joined"`
	EventsDelivered atomic.Uint64 `json:"events_delivered"`
	EventsDropped   atomic.Uint64 `json:"events_dropped"`
}

type RealtimeReport struct {
	State RealtimeState `json:"state"`
}

type RedisPublisherErrors struct {
	Publish           atomic.Uint64 `json:"publish"`
	PersistentFailure atomic.Uint64 `json:"persistent"`
}

type RedisPublisherState struct {
	LastSuccessfulMessageTimestamp atomic.Int64  `json:"last_successful_message_timestamp"`
	MessagesPublished              atomic.Uint64 `json:"messages_published"`
}

type RedisPublisherReport struct {
	State  RedisPublisherState  `json:"state"`
	Errors RedisPublisherErrors `json:"errors"`
}

type Report struct {
	Run            *RunReport            `json:"run,omitempty"`
	Api            *ApiReport            `json:"api,omitempty"`
	Pickup         *PickupReport         `json:"pickup,omitempty"`
	Realtime       *RealtimeReport       `json:"realtime,omitempty"`
	RedisPublisher *RedisPublisherReport `json:"redis_publisher,omitempty"`
}
