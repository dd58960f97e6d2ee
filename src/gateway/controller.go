package gateway

import (
	"github.com/ecopickup/backend/src/notify"
	"github.com/ecopickup/backend/src/pickup"
	"github.com/ecopickup/backend/src/realtime"
	"github.com/ecopickup/backend/src/utils/config"
	"github.com/ecopickup/backend/src/utils/model"
	"github.com/ecopickup/backend/src/utils/monitoring"
	"github.com/ecopickup/backend/src/utils/task"
)

// Controller wires every component of the backend and manages their
// lifecycle as one task tree
type Controller struct {
	*task.Task
}

func NewController(config *config.Config) (self *Controller, err error) {
	self = new(Controller)
	self.Task = task.NewTask(config, "controller")

	// Monitoring
	monitor := monitoring.NewMonitor().
		WithMaxHistorySize(30)

	monitoringServer := monitoring.NewServer(config).
		WithMonitor(monitor)

	// Database
	db, err := model.NewConnection(self.Ctx, config, "gateway")
	if err != nil {
		return
	}

	store := pickup.NewDatabaseStore(config).
		WithDB(db)

	// Realtime
	hub := realtime.NewHub(config).
		WithMonitor(monitor)

	var mirror chan *model.RealtimeMessage
	var publisher *realtime.Publisher
	if config.Redis.Enabled {
		mirror = make(chan *model.RealtimeMessage, config.Redis.MaxQueueSize)
		publisher = realtime.NewPublisher(config, "redis-publisher").
			WithInputChannel(mirror).
			WithMonitor(monitor)
	}

	fanout := realtime.NewFanout(hub).
		WithMirror(mirror).
		WithMonitor(monitor)

	// Domain
	notifier := notify.NewNotifier(config).
		WithWriter(store).
		WithPusher(fanout).
		WithMonitor(monitor)

	manager := pickup.NewManager(config).
		WithStore(store).
		WithNotifier(notifier).
		WithBroadcaster(fanout).
		WithMonitor(monitor)

	// API
	auth := NewAuth(config).
		WithMonitor(monitor)

	server := NewServer(config).
		WithMonitor(monitor).
		WithStore(store).
		WithManager(manager).
		WithHub(hub).
		WithAuth(auth)

	self.Task = self.Task.
		WithSubtask(monitor.Task).
		WithSubtask(monitoringServer.Task).
		WithSubtask(hub.Task)

	if publisher != nil {
		self.Task = self.Task.WithSubtask(publisher.Task)
	}

	self.Task = self.Task.WithSubtask(server.Task)

	return
}
