package realtime

import (
	"context"
	"sync"

	"github.com/ecopickup/backend/src/utils/config"
	"github.com/ecopickup/backend/src/utils/model"
	"github.com/ecopickup/backend/src/utils/monitoring"
	"github.com/ecopickup/backend/src/utils/task"

	"github.com/gin-gonic/gin"
	"github.com/rs/xid"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

// Envelope is the frame every websocket client receives
type Envelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// joinMessage is the only frame clients are expected to send. A session
// declares its user identity to subscribe to its per-user channel.
type joinMessage struct {
	Action string `json:"action"`
	UserId string `json:"userId"`
}

type session struct {
	id     string
	userId string
	conn   *websocket.Conn
	send   chan Envelope
}

// Hub tracks live websocket sessions and their channel membership.
// Membership is ephemeral, nothing is queued for disconnected sessions,
// durability lives in notification records.
type Hub struct {
	*task.Task

	monitor *monitoring.Monitor

	mtx      sync.RWMutex
	sessions map[string]*session
	rooms    map[string]map[string]*session
}

func NewHub(config *config.Config) (self *Hub) {
	self = new(Hub)

	self.sessions = make(map[string]*session)
	self.rooms = make(map[string]map[string]*session)

	self.Task = task.NewTask(config, "hub").
		WithOnStop(self.closeAll)

	return
}

func (self *Hub) WithMonitor(monitor *monitoring.Monitor) *Hub {
	self.monitor = monitor
	return self
}

// OnConnect upgrades the request and serves the session until it
// disconnects
func (self *Hub) OnConnect(c *gin.Context) {
	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		self.Log.WithError(err).Debug("Failed to accept websocket connection")
		return
	}

	sess := &session{
		id:   xid.New().String(),
		conn: conn,
		send: make(chan Envelope, self.Config.Realtime.SessionBufferSize),
	}

	self.register(sess)
	self.Log.WithField("session_id", sess.id).Debug("Session connected")

	go self.write(sess)
	self.read(sess)

	self.unregister(sess)
	self.Log.WithField("session_id", sess.id).Debug("Session disconnected")
}

func (self *Hub) register(sess *session) {
	self.mtx.Lock()
	defer self.mtx.Unlock()
	self.sessions[sess.id] = sess

	if self.monitor != nil {
		self.monitor.GetReport().Realtime.State.SessionsActive.Inc()
	}
}

func (self *Hub) unregister(sess *session) {
	self.mtx.Lock()
	defer self.mtx.Unlock()

	if _, ok := self.sessions[sess.id]; !ok {
		return
	}
	delete(self.sessions, sess.id)
	self.leaveRoom(sess)
	close(sess.send)
	_ = sess.conn.Close(websocket.StatusNormalClosure, "")

	if self.monitor != nil {
		self.monitor.GetReport().Realtime.State.SessionsActive.Dec()
	}
}

// leaveRoom must be called with the lock held
func (self *Hub) leaveRoom(sess *session) {
	if sess.userId == "" {
		return
	}
	channel := model.UserChannel(sess.userId)
	if room, ok := self.rooms[channel]; ok {
		delete(room, sess.id)
		if len(room) == 0 {
			delete(self.rooms, channel)
		}
	}
	sess.userId = ""
}

func (self *Hub) join(sess *session, userId string) {
	self.mtx.Lock()
	defer self.mtx.Unlock()

	if _, ok := self.sessions[sess.id]; !ok {
		// Already disconnected
		return
	}

	// Re-joining as a different user moves the session
	self.leaveRoom(sess)

	sess.userId = userId
	channel := model.UserChannel(userId)
	room, ok := self.rooms[channel]
	if !ok {
		room = make(map[string]*session)
		self.rooms[channel] = room
	}
	room[sess.id] = sess

	if self.monitor != nil {
		self.monitor.GetReport().Realtime.State.SessionsJoined.Inc()
	}
	self.Log.WithField("session_id", sess.id).WithField("user_id", userId).Debug("Session joined room")
}

func (self *Hub) read(sess *session) {
	for {
		var msg joinMessage
		err := wsjson.Read(self.Ctx, sess.conn, &msg)
		if err != nil {
			return
		}

		if msg.Action == "join" && msg.UserId != "" {
			self.join(sess, msg.UserId)
		}
	}
}

func (self *Hub) write(sess *session) {
	for envelope := range sess.send {
		ctx, cancel := context.WithTimeout(self.Ctx, self.Config.Realtime.WriteTimeout)
		err := wsjson.Write(ctx, sess.conn, envelope)
		cancel()
		if err != nil {
			self.Log.WithError(err).WithField("session_id", sess.id).Debug("Failed to write to session")
			return
		}
	}
}

func (self *Hub) deliver(sess *session, envelope Envelope) {
	// Never blocks a publisher, slow sessions lose events
	select {
	case sess.send <- envelope:
		if self.monitor != nil {
			self.monitor.GetReport().Realtime.State.EventsDelivered.Inc()
		}
	default:
		if self.monitor != nil {
			self.monitor.GetReport().Realtime.State.EventsDropped.Inc()
		}
	}
}

// PublishToUser pushes an event to every session in the user's room
func (self *Hub) PublishToUser(userId string, event string, payload interface{}) {
	envelope := Envelope{Event: event, Data: payload}

	self.mtx.RLock()
	defer self.mtx.RUnlock()

	for _, sess := range self.rooms[model.UserChannel(userId)] {
		self.deliver(sess, envelope)
	}
}

// PublishGlobal pushes an event to every connected session
func (self *Hub) PublishGlobal(event string, payload interface{}) {
	envelope := Envelope{Event: event, Data: payload}

	self.mtx.RLock()
	defer self.mtx.RUnlock()

	for _, sess := range self.sessions {
		self.deliver(sess, envelope)
	}
}

// NumSessions returns the number of connected sessions
func (self *Hub) NumSessions() int {
	self.mtx.RLock()
	defer self.mtx.RUnlock()
	return len(self.sessions)
}

func (self *Hub) closeAll() {
	self.mtx.Lock()
	defer self.mtx.Unlock()

	for id, sess := range self.sessions {
		delete(self.sessions, id)
		self.leaveRoom(sess)
		close(sess.send)
		_ = sess.conn.Close(websocket.StatusGoingAway, "server shutting down")
	}

	if self.monitor != nil {
		self.monitor.GetReport().Realtime.State.SessionsActive.Store(0)
	}
}
