package realtime

import (
	"encoding/json"
	"testing"

	"github.com/ecopickup/backend/src/utils/config"
	"github.com/ecopickup/backend/src/utils/model"

	"github.com/stretchr/testify/suite"
)

func TestFanoutTestSuite(t *testing.T) {
	suite.Run(t, new(FanoutTestSuite))
}

type FanoutTestSuite struct {
	suite.Suite
	config *config.Config
}

func (s *FanoutTestSuite) SetupSuite() {
	s.config = config.Default()
}

func (s *FanoutTestSuite) TestMirrorsUserEvents() {
	mirror := make(chan *model.RealtimeMessage, 4)
	fanout := NewFanout(NewHub(s.config)).WithMirror(mirror)

	fanout.PublishToUser("u1", model.EventPickupUpdated, &model.PickupUpdatedEvent{
		PickupId: "p1",
		Status:   model.PickupStatusAccepted,
	})

	s.Require().Len(mirror, 1)
	message := <-mirror
	s.Equal("user-u1", message.Channel)
	s.Equal(model.EventPickupUpdated, message.Event)

	var payload model.PickupUpdatedEvent
	s.Require().NoError(json.Unmarshal(message.Payload, &payload))
	s.Equal("p1", payload.PickupId)
	s.Equal(model.PickupStatusAccepted, payload.Status)
}

func (s *FanoutTestSuite) TestMirrorsGlobalEvents() {
	mirror := make(chan *model.RealtimeMessage, 4)
	fanout := NewFanout(NewHub(s.config)).WithMirror(mirror)

	fanout.PublishGlobal(model.EventNewPickupAvailable, &model.NewPickupAvailableEvent{
		PickupId: "p1",
		ItemId:   "i1",
	})

	s.Require().Len(mirror, 1)
	message := <-mirror
	s.Equal(model.ChannelGlobal, message.Channel)
	s.Equal(model.EventNewPickupAvailable, message.Event)
}

func (s *FanoutTestSuite) TestFullMirrorDropsInsteadOfBlocking() {
	mirror := make(chan *model.RealtimeMessage, 1)
	fanout := NewFanout(NewHub(s.config)).WithMirror(mirror)

	fanout.PublishGlobal(model.EventNewPickupAvailable, &model.NewPickupAvailableEvent{PickupId: "p1"})
	// Must not block even though nothing drains the channel
	fanout.PublishGlobal(model.EventNewPickupAvailable, &model.NewPickupAvailableEvent{PickupId: "p2"})

	s.Len(mirror, 1)
}

func (s *FanoutTestSuite) TestNoMirrorConfigured() {
	fanout := NewFanout(NewHub(s.config))

	// Hub-only deployments skip mirroring entirely
	fanout.PublishToUser("u1", model.EventPickupUpdated, &model.PickupUpdatedEvent{PickupId: "p1"})
}
