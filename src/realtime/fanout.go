package realtime

import (
	"encoding/json"

	"github.com/ecopickup/backend/src/utils/logger"
	"github.com/ecopickup/backend/src/utils/model"
	"github.com/ecopickup/backend/src/utils/monitoring"

	"github.com/sirupsen/logrus"
)

// Fanout delivers events to the local hub and mirrors them to the Redis
// publisher so other instances and ops tooling can subscribe to the same
// channels. Mirroring is best effort, a full buffer drops the message.
type Fanout struct {
	Log *logrus.Entry

	hub     *Hub
	mirror  chan *model.RealtimeMessage
	monitor *monitoring.Monitor
}

func NewFanout(hub *Hub) (self *Fanout) {
	self = new(Fanout)
	self.Log = logger.NewSublogger("fanout")
	self.hub = hub
	return
}

func (self *Fanout) WithMirror(mirror chan *model.RealtimeMessage) *Fanout {
	self.mirror = mirror
	return self
}

func (self *Fanout) WithMonitor(monitor *monitoring.Monitor) *Fanout {
	self.monitor = monitor
	return self
}

func (self *Fanout) PublishToUser(userId string, event string, payload interface{}) {
	self.hub.PublishToUser(userId, event, payload)
	self.mirrorOut(model.UserChannel(userId), event, payload)
}

func (self *Fanout) PublishGlobal(event string, payload interface{}) {
	self.hub.PublishGlobal(event, payload)
	self.mirrorOut(model.ChannelGlobal, event, payload)
}

func (self *Fanout) mirrorOut(channel, event string, payload interface{}) {
	if self.mirror == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		self.Log.WithError(err).WithField("event", event).Error("Failed to marshal event for mirroring")
		return
	}

	message := &model.RealtimeMessage{
		Channel: channel,
		Event:   event,
		Payload: data,
	}

	select {
	case self.mirror <- message:
	default:
		self.Log.WithField("event", event).Warn("Mirror buffer full, dropping event")
		if self.monitor != nil {
			self.monitor.GetReport().Realtime.State.EventsDropped.Inc()
		}
	}
}
