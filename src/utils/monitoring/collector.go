package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Collector struct {
	monitor *Monitor

	StartTimestamp                 *prometheus.Desc
	UpForSeconds                   *prometheus.Desc
	RequestsServed                 *prometheus.Desc
	PickupsCreated                 *prometheus.Desc
	PickupsAccepted                *prometheus.Desc
	PickupsCompleted               *prometheus.Desc
	StatusUpdates                  *prometheus.Desc
	NotificationsSaved             *prometheus.Desc
	AveragePickupsCreatedPerMinute *prometheus.Desc
	SessionsActive                 *prometheus.Desc
	SessionsJoined                 *prometheus.Desc
	EventsDelivered                *prometheus.Desc
	EventsDropped                  *prometheus.Desc
	MessagesPublished              *prometheus.Desc

	ApiBadRequestErrors   *prometheus.Desc
	ApiUnauthorizedErrors *prometheus.Desc
	ApiForbiddenErrors    *prometheus.Desc
	ApiNotFoundErrors     *prometheus.Desc
	ApiConflictErrors     *prometheus.Desc
	ApiInternalErrors     *prometheus.Desc
	AcceptConflicts       *prometheus.Desc
	InvalidTransitions    *prometheus.Desc
	DbErrors              *prometheus.Desc
	RedisPublishErrors    *prometheus.Desc
	RedisPersistentErrors *prometheus.Desc
}

func NewCollector() *Collector {
	labels := prometheus.Labels{
		"app": "pickup",
	}

	return &Collector{
		StartTimestamp:                 prometheus.NewDesc("start_timestamp", "", nil, labels),
		UpForSeconds:                   prometheus.NewDesc("up_for_seconds", "", nil, labels),
		RequestsServed:                 prometheus.NewDesc("requests_served", "", nil, labels),
		PickupsCreated:                 prometheus.NewDesc("pickups_created", "", nil, labels),
		PickupsAccepted:                prometheus.NewDesc("pickups_accepted", "", nil, labels),
		PickupsCompleted:               prometheus.NewDesc("pickups_completed", "", nil, labels),
		StatusUpdates:                  prometheus.NewDesc("status_updates", "", nil, labels),
		NotificationsSaved:             prometheus.NewDesc("notifications_saved", "", nil, labels),
		AveragePickupsCreatedPerMinute: prometheus.NewDesc("average_pickups_created_per_minute", "", nil, labels),
		SessionsActive:                 prometheus.NewDesc("sessions_active", "", nil, labels),
		SessionsJoined:                 prometheus.NewDesc("sessions_joined", "", nil, labels),
		EventsDelivered:                prometheus.NewDesc("events_delivered", "", nil, labels),
		EventsDropped:                  prometheus.NewDesc("events_dropped", "", nil, labels),
		MessagesPublished:              prometheus.NewDesc("redis_messages_published", "", nil, labels),

		// Errors
		ApiBadRequestErrors:   prometheus.NewDesc("error_api_bad_request", "", nil, labels),
		ApiUnauthorizedErrors: prometheus.NewDesc("error_api_unauthorized", "", nil, labels),
		ApiForbiddenErrors:    prometheus.NewDesc("error_api_forbidden", "", nil, labels),
		ApiNotFoundErrors:     prometheus.NewDesc("error_api_not_found", "", nil, labels),
		ApiConflictErrors:     prometheus.NewDesc("error_api_conflict", "", nil, labels),
		ApiInternalErrors:     prometheus.NewDesc("error_api_internal", "", nil, labels),
		AcceptConflicts:       prometheus.NewDesc("error_accept_conflict", "", nil, labels),
		InvalidTransitions:    prometheus.NewDesc("error_invalid_transition", "", nil, labels),
		DbErrors:              prometheus.NewDesc("error_db", "", nil, labels),
		RedisPublishErrors:    prometheus.NewDesc("error_redis_publish", "", nil, labels),
		RedisPersistentErrors: prometheus.NewDesc("error_redis_persistent", "", nil, labels),
	}
}

func (self *Collector) WithMonitor(m *Monitor) *Collector {
	self.monitor = m
	return self
}

func (self *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- self.StartTimestamp
	ch <- self.UpForSeconds
	ch <- self.RequestsServed
	ch <- self.PickupsCreated
	ch <- self.PickupsAccepted
	ch <- self.PickupsCompleted
	ch <- self.StatusUpdates
	ch <- self.NotificationsSaved
	ch <- self.AveragePickupsCreatedPerMinute
	ch <- self.SessionsActive
	ch <- self.SessionsJoined
	ch <- self.EventsDelivered
	ch <- self.EventsDropped
	ch <- self.MessagesPublished
	ch <- self.ApiBadRequestErrors
	ch <- self.ApiUnauthorizedErrors
	ch <- self.ApiForbiddenErrors
	ch <- self.ApiNotFoundErrors
	ch <- self.ApiConflictErrors
	ch <- self.ApiInternalErrors
	ch <- self.AcceptConflicts
	ch <- self.InvalidTransitions
	ch <- self.DbErrors
	ch <- self.RedisPublishErrors
	ch <- self.RedisPersistentErrors
}

func (self *Collector) Collect(ch chan<- prometheus.Metric) {
	report := self.monitor.GetReport()

	ch <- prometheus.MustNewConstMetric(self.StartTimestamp, prometheus.GaugeValue, float64(report.Run.StartTimestamp.Load()))
	ch <- prometheus.MustNewConstMetric(self.UpForSeconds, prometheus.GaugeValue, float64(report.Run.UpForSeconds.Load()))
	ch <- prometheus.MustNewConstMetric(self.RequestsServed, prometheus.CounterValue, float64(report.Api.State.RequestsServed.Load()))
	ch <- prometheus.MustNewConstMetric(self.PickupsCreated, prometheus.CounterValue, float64(report.Pickup.State.PickupsCreated.Load()))
	ch <- prometheus.MustNewConstMetric(self.PickupsAccepted, prometheus.CounterValue, float64(report.Pickup.State.PickupsAccepted.Load()))
	ch <- prometheus.MustNewConstMetric(self.PickupsCompleted, prometheus.CounterValue, float64(report.Pickup.State.PickupsCompleted.Load()))
	ch <- prometheus.MustNewConstMetric(self.StatusUpdates, prometheus.CounterValue, float64(report.Pickup.State.StatusUpdates.Load()))
	ch <- prometheus.MustNewConstMetric(self.NotificationsSaved, prometheus.CounterValue, float64(report.Pickup.State.NotificationsSaved.Load()))
	ch <- prometheus.MustNewConstMetric(self.AveragePickupsCreatedPerMinute, prometheus.GaugeValue, report.Pickup.State.AveragePickupsCreatedPerMinute.Load())
	ch <- prometheus.MustNewConstMetric(self.SessionsActive, prometheus.GaugeValue, float64(report.Realtime.State.SessionsActive.Load()))
	ch <- prometheus.MustNewConstMetric(self.SessionsJoined, prometheus.CounterValue, float64(report.Realtime.State.SessionsJoined.Load()))
	ch <- prometheus.MustNewConstMetric(self.EventsDelivered, prometheus.CounterValue, float64(report.Realtime.State.EventsDelivered.Load()))
	ch <- prometheus.MustNewConstMetric(self.EventsDropped, prometheus.CounterValue, float64(report.Realtime.State.EventsDropped.Load()))
	ch <- prometheus.MustNewConstMetric(self.MessagesPublished, prometheus.CounterValue, float64(report.RedisPublisher.State.MessagesPublished.Load()))
	ch <- prometheus.MustNewConstMetric(self.ApiBadRequestErrors, prometheus.CounterValue, float64(report.Api.Errors.BadRequest.Load()))
	ch <- prometheus.MustNewConstMetric(self.ApiUnauthorizedErrors, prometheus.CounterValue, float64(report.Api.Errors.Unauthorized.Load()))
	ch <- prometheus.MustNewConstMetric(self.ApiForbiddenErrors, prometheus.CounterValue, float64(report.Api.Errors.Forbidden.Load()))
	ch <- prometheus.MustNewConstMetric(self.ApiNotFoundErrors, prometheus.CounterValue, float64(report.Api.Errors.NotFound.Load()))
	ch <- prometheus.MustNewConstMetric(self.ApiConflictErrors, prometheus.CounterValue, float64(report.Api.Errors.Conflict.Load()))
	ch <- prometheus.MustNewConstMetric(self.ApiInternalErrors, prometheus.CounterValue, float64(report.Api.Errors.Internal.Load()))
	ch <- prometheus.MustNewConstMetric(self.AcceptConflicts, prometheus.CounterValue, float64(report.Pickup.Errors.AcceptConflicts.Load()))
	ch <- prometheus.MustNewConstMetric(self.InvalidTransitions, prometheus.CounterValue, float64(report.Pickup.Errors.InvalidTransitions.Load()))
	ch <- prometheus.MustNewConstMetric(self.DbErrors, prometheus.CounterValue, float64(report.Pickup.Errors.DbError.Load()))
	ch <- prometheus.MustNewConstMetric(self.RedisPublishErrors, prometheus.CounterValue, float64(report.RedisPublisher.Errors.Publish.Load()))
	ch <- prometheus.MustNewConstMetric(self.RedisPersistentErrors, prometheus.CounterValue, float64(report.RedisPublisher.Errors.PersistentFailure.Load()))
}
