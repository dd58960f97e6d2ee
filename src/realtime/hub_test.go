package realtime

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ecopickup/backend/src/utils/config"
	"github.com/ecopickup/backend/src/utils/model"
	"github.com/ecopickup/backend/src/utils/monitoring"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

func TestHubTestSuite(t *testing.T) {
	suite.Run(t, new(HubTestSuite))
}

type HubTestSuite struct {
	suite.Suite
	config  *config.Config
	monitor *monitoring.Monitor
	hub     *Hub
	server  *httptest.Server
}

func (s *HubTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	s.config = config.Default()
}

func (s *HubTestSuite) SetupTest() {
	s.monitor = monitoring.NewMonitor()
	s.hub = NewHub(s.config).WithMonitor(s.monitor)

	router := gin.New()
	router.GET("/ws", s.hub.OnConnect)
	s.server = httptest.NewServer(router)
}

func (s *HubTestSuite) TearDownTest() {
	s.hub.Stop()
	s.server.Close()
}

func (s *HubTestSuite) dial() *websocket.Conn {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	url := "ws" + strings.TrimPrefix(s.server.URL, "http") + "/ws"
	conn, _, err := websocket.Dial(ctx, url, nil)
	s.Require().NoError(err)
	return conn
}

func (s *HubTestSuite) join(conn *websocket.Conn, userId string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := wsjson.Write(ctx, conn, map[string]string{"action": "join", "userId": userId})
	s.Require().NoError(err)
}

func (s *HubTestSuite) read(conn *websocket.Conn) (envelope Envelope) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := wsjson.Read(ctx, conn, &envelope)
	s.Require().NoError(err)
	return
}

func (s *HubTestSuite) waitJoined(n uint64) {
	s.Eventually(func() bool {
		return s.monitor.GetReport().Realtime.State.SessionsJoined.Load() == n
	}, time.Second, 5*time.Millisecond)
}

func (s *HubTestSuite) waitSessions(n int) {
	s.Eventually(func() bool {
		return s.hub.NumSessions() == n
	}, time.Second, 5*time.Millisecond)
}

func (s *HubTestSuite) TestGlobalReachesUnjoinedSessions() {
	conn := s.dial()
	defer conn.Close(websocket.StatusNormalClosure, "")
	s.waitSessions(1)

	s.hub.PublishGlobal(model.EventNewPickupAvailable, &model.NewPickupAvailableEvent{PickupId: "p1"})

	envelope := s.read(conn)
	s.Equal(model.EventNewPickupAvailable, envelope.Event)
}

func (s *HubTestSuite) TestUserRoomAddressing() {
	joined := s.dial()
	defer joined.Close(websocket.StatusNormalClosure, "")
	bystander := s.dial()
	defer bystander.Close(websocket.StatusNormalClosure, "")

	s.waitSessions(2)
	s.join(joined, "u1")
	s.waitJoined(1)

	s.hub.PublishToUser("u1", model.EventPickupUpdated, &model.PickupUpdatedEvent{PickupId: "p1"})
	s.hub.PublishGlobal(model.EventNewPickupAvailable, &model.NewPickupAvailableEvent{PickupId: "p2"})

	// The joined session sees both, in order
	s.Equal(model.EventPickupUpdated, s.read(joined).Event)
	s.Equal(model.EventNewPickupAvailable, s.read(joined).Event)

	// The bystander never saw the per-user event
	s.Equal(model.EventNewPickupAvailable, s.read(bystander).Event)
}

func (s *HubTestSuite) TestRejoinMovesSession() {
	conn := s.dial()
	defer conn.Close(websocket.StatusNormalClosure, "")

	s.waitSessions(1)
	s.join(conn, "u1")
	s.waitJoined(1)
	s.join(conn, "u2")
	s.waitJoined(2)

	s.hub.PublishToUser("u1", model.EventPickupUpdated, &model.PickupUpdatedEvent{PickupId: "stale"})
	s.hub.PublishToUser("u2", model.EventPickupUpdated, &model.PickupUpdatedEvent{PickupId: "p1"})

	// Only the event addressed to the new identity arrives
	envelope := s.read(conn)
	s.Equal(model.EventPickupUpdated, envelope.Event)
	data := envelope.Data.(map[string]interface{})
	s.Equal("p1", data["pickupId"])
}

func (s *HubTestSuite) TestUnregisterEvictsSession() {
	conn := s.dial()
	s.waitSessions(1)
	s.join(conn, "u1")
	s.waitJoined(1)

	s.Require().NoError(conn.Close(websocket.StatusNormalClosure, ""))
	s.waitSessions(0)

	// Publishing to the departed user delivers nowhere
	s.hub.PublishToUser("u1", model.EventPickupUpdated, &model.PickupUpdatedEvent{PickupId: "p1"})
	s.Zero(s.monitor.GetReport().Realtime.State.EventsDelivered.Load())
}
