package notify

import (
	"context"

	"github.com/ecopickup/backend/src/utils/config"
	"github.com/ecopickup/backend/src/utils/logger"
	"github.com/ecopickup/backend/src/utils/model"
	"github.com/ecopickup/backend/src/utils/monitoring"

	"github.com/sirupsen/logrus"
)

// Writer persists notification records
type Writer interface {
	SaveNotification(ctx context.Context, notification *model.Notification) error
}

// Pusher delivers an event to a user's live sessions, best effort
type Pusher interface {
	PublishToUser(userId string, event string, payload interface{})
}

// Notifier persists a notification and then pushes it to the recipient's
// live sessions. The record is the durable part, a missed push can always
// be recovered by fetching notifications later.
type Notifier struct {
	Config *config.Config
	Log    *logrus.Entry

	writer  Writer
	pusher  Pusher
	monitor *monitoring.Monitor
}

func NewNotifier(config *config.Config) (self *Notifier) {
	self = new(Notifier)
	self.Config = config
	self.Log = logger.NewSublogger("notifier")
	return
}

func (self *Notifier) WithWriter(writer Writer) *Notifier {
	self.writer = writer
	return self
}

func (self *Notifier) WithPusher(pusher Pusher) *Notifier {
	self.pusher = pusher
	return self
}

func (self *Notifier) WithMonitor(monitor *monitoring.Monitor) *Notifier {
	self.monitor = monitor
	return self
}

// Notify writes the record first. The push only happens after a successful
// write and can never fail the call.
func (self *Notifier) Notify(ctx context.Context, userId, message, notificationType string, relatedId, relatedType string) (notification *model.Notification, err error) {
	notification = &model.Notification{
		UserId:  userId,
		Message: message,
		Type:    notificationType,
	}
	if relatedId != "" {
		notification.RelatedId = &relatedId
	}
	if relatedType != "" {
		notification.RelatedType = &relatedType
	}

	err = self.writer.SaveNotification(ctx, notification)
	if err != nil {
		self.Log.WithError(err).WithField("user_id", userId).Error("Failed to save notification")
		return nil, err
	}

	if self.monitor != nil {
		self.monitor.GetReport().Pickup.State.NotificationsSaved.Inc()
	}

	if self.pusher != nil {
		self.pusher.PublishToUser(userId, model.EventNotification, &model.NotificationEvent{
			NotificationId: notification.Id,
			Message:        notification.Message,
			Type:           notification.Type,
			RelatedId:      relatedId,
			RelatedType:    relatedType,
		})
	}

	return
}
