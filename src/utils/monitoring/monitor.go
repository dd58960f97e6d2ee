package monitoring

import (
	"math"
	"net/http"
	"time"

	"github.com/ecopickup/backend/src/utils/task"

	"github.com/gammazero/deque"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Stores and computes monitor counters
type Monitor struct {
	*task.Task

	Report Report

	historySize int

	collector *Collector

	// Pickup throughput history
	PickupsCreated *deque.Deque[uint64]
}

func NewMonitor() (self *Monitor) {
	self = new(Monitor)

	self.Report = Report{
		Run:            &RunReport{},
		Api:            &ApiReport{},
		Pickup:         &PickupReport{},
		Realtime:       &RealtimeReport{},
		RedisPublisher: &RedisPublisherReport{},
	}

	// Initialization
	self.Report.Run.StartTimestamp.Store(time.Now().Unix())

	self.collector = NewCollector().WithMonitor(self)

	self.Task = task.NewTask(nil, "monitor").
		WithPeriodicSubtaskFunc(time.Minute, self.monitorPickups)
	return
}

func (self *Monitor) WithMaxHistorySize(maxHistorySize int) *Monitor {
	self.historySize = maxHistorySize

	self.PickupsCreated = deque.New[uint64](self.historySize)

	return self
}

func (self *Monitor) GetReport() *Report {
	return &self.Report
}

func (self *Monitor) GetPrometheusCollector() (collector prometheus.Collector) {
	return self.collector
}

func round(f float64) float64 {
	return math.Round(f*100) / 100
}

// Measure pickup creation speed
func (self *Monitor) monitorPickups() (err error) {
	loaded := self.Report.Pickup.State.PickupsCreated.Load()

	self.PickupsCreated.PushBack(loaded)
	if self.PickupsCreated.Len() > self.historySize {
		self.PickupsCreated.PopFront()
	}
	value := float64(self.PickupsCreated.Back()-self.PickupsCreated.Front()) / float64(self.PickupsCreated.Len())

	self.Report.Pickup.State.AveragePickupsCreatedPerMinute.Store(round(value))
	return
}

func (self *Monitor) IsOK() bool {
	// The API is stateless, being up is being healthy
	return true
}

func (self *Monitor) OnGet(c *gin.Context) {
	self.Report.Run.UpForSeconds.Store(time.Now().Unix() - self.Report.Run.StartTimestamp.Load())
	c.JSON(http.StatusOK, &self.Report)
}
