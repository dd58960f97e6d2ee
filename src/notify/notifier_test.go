package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/ecopickup/backend/src/utils/config"
	"github.com/ecopickup/backend/src/utils/model"

	"github.com/stretchr/testify/suite"
)

func TestNotifierTestSuite(t *testing.T) {
	suite.Run(t, new(NotifierTestSuite))
}

type NotifierTestSuite struct {
	suite.Suite
	ctx    context.Context
	cancel context.CancelFunc
	config *config.Config
}

func (s *NotifierTestSuite) SetupSuite() {
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.config = config.Default()
}

func (s *NotifierTestSuite) TearDownSuite() {
	s.cancel()
}

type recordingWriter struct {
	saved []*model.Notification
	err   error
}

func (self *recordingWriter) SaveNotification(ctx context.Context, notification *model.Notification) error {
	if self.err != nil {
		return self.err
	}
	notification.Id = "n1"
	self.saved = append(self.saved, notification)
	return nil
}

type recordingPusher struct {
	pushed []string
}

func (self *recordingPusher) PublishToUser(userId string, event string, payload interface{}) {
	self.pushed = append(self.pushed, event)
}

func (s *NotifierTestSuite) TestPersistsBeforePush() {
	writer := new(recordingWriter)
	pusher := new(recordingPusher)
	notifier := NewNotifier(s.config).WithWriter(writer).WithPusher(pusher)

	notification, err := notifier.Notify(s.ctx, "u1", "hello", model.NotificationTypeInfo, "p1", model.RelatedTypePickup)
	s.Require().NoError(err)
	s.Equal("n1", notification.Id)

	s.Require().Len(writer.saved, 1)
	s.Equal("u1", writer.saved[0].UserId)
	s.Require().NotNil(writer.saved[0].RelatedId)
	s.Equal("p1", *writer.saved[0].RelatedId)

	s.Equal([]string{model.EventNotification}, pusher.pushed)
}

func (s *NotifierTestSuite) TestNoPushWhenWriteFails() {
	writer := &recordingWriter{err: errors.New("db down")}
	pusher := new(recordingPusher)
	notifier := NewNotifier(s.config).WithWriter(writer).WithPusher(pusher)

	notification, err := notifier.Notify(s.ctx, "u1", "hello", model.NotificationTypeInfo, "", "")
	s.Error(err)
	s.Nil(notification)
	s.Empty(pusher.pushed)
}

func (s *NotifierTestSuite) TestEmptyRelatedFieldsStayNull() {
	writer := new(recordingWriter)
	notifier := NewNotifier(s.config).WithWriter(writer)

	notification, err := notifier.Notify(s.ctx, "u1", "hello", model.NotificationTypeWarning, "", "")
	s.Require().NoError(err)
	s.Nil(notification.RelatedId)
	s.Nil(notification.RelatedType)
}
