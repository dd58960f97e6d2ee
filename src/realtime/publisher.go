package realtime

import (
	"context"
	"fmt"
	"time"

	"github.com/ecopickup/backend/src/utils/config"
	"github.com/ecopickup/backend/src/utils/model"
	"github.com/ecopickup/backend/src/utils/monitoring"
	"github.com/ecopickup/backend/src/utils/task"

	"github.com/redis/go-redis/v9"
)

// Publisher forwards realtime messages to Redis pub/sub channels
type Publisher struct {
	*task.Task

	redisConfig config.Redis

	monitor *monitoring.Monitor

	client *redis.Client
	input  chan *model.RealtimeMessage
}

func NewPublisher(config *config.Config, name string) (self *Publisher) {
	self = new(Publisher)

	self.redisConfig = config.Redis

	self.Task = task.NewTask(config, name).
		WithSubtaskFunc(self.run).
		WithOnBeforeStart(self.connect).
		WithOnAfterStop(self.disconnect).
		WithWorkerPool(config.Redis.MaxWorkers, config.Redis.MaxQueueSize)

	return
}

func (self *Publisher) WithInputChannel(v chan *model.RealtimeMessage) *Publisher {
	self.input = v
	return self
}

func (self *Publisher) WithMonitor(monitor *monitoring.Monitor) *Publisher {
	self.monitor = monitor
	return self
}

func (self *Publisher) disconnect() {
	err := self.client.Close()
	if err != nil {
		self.Log.WithError(err).Error("Failed to close connection")
	}
}

func (self *Publisher) connect() (err error) {
	opts := redis.Options{
		ClientName:      fmt.Sprintf("ecopickup/%s", self.Name),
		Addr:            fmt.Sprintf("%s:%d", self.redisConfig.Host, self.redisConfig.Port),
		Password:        self.redisConfig.Password,
		Username:        self.redisConfig.User,
		DB:              self.redisConfig.DB,
		MinIdleConns:    self.redisConfig.MinIdleConns,
		MaxIdleConns:    self.redisConfig.MaxIdleConns,
		ConnMaxIdleTime: self.redisConfig.ConnMaxIdleTime,
		PoolSize:        self.redisConfig.MaxOpenConns,
		ConnMaxLifetime: self.redisConfig.ConnMaxLifetime,
	}

	self.client = redis.NewClient(&opts)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	err = self.client.Ping(ctx).Err()
	if err != nil {
		self.Log.WithError(err).Error("Failed to ping Redis")
		return
	}

	return
}

func (self *Publisher) run() (err error) {
	for {
		select {
		case <-self.StopChannel:
			return nil
		case message, ok := <-self.input:
			if !ok {
				return nil
			}
			self.publish(message)
		}
	}
}

func (self *Publisher) publish(message *model.RealtimeMessage) {
	submitted := self.SubmitToWorker(func() {
		channelName := self.redisConfig.ChannelPrefix + message.Channel

		err := task.NewRetry().
			WithContext(self.Ctx).
			WithMaxElapsedTime(self.redisConfig.MaxElapsedTime).
			WithMaxInterval(self.redisConfig.MaxInterval).
			WithOnError(func(err error, isDurationAcceptable bool) error {
				self.Log.WithError(err).Error("Failed to publish message, retrying")
				if self.monitor != nil {
					self.monitor.GetReport().RedisPublisher.Errors.Publish.Inc()
				}
				return err
			}).
			Run(func() (err error) {
				return self.client.Publish(self.Ctx, channelName, message).Err()
			})
		if err != nil {
			self.Log.WithError(err).Error("Failed to publish message, giving up")
			if self.monitor != nil {
				self.monitor.GetReport().RedisPublisher.Errors.PersistentFailure.Inc()
			}
			return
		}

		if self.monitor != nil {
			self.monitor.GetReport().RedisPublisher.State.MessagesPublished.Inc()
			self.monitor.GetReport().RedisPublisher.State.LastSuccessfulMessageTimestamp.Store(time.Now().Unix())
		}
	})
	if !submitted {
		self.Log.Warn("Publish queue full, dropping message")
	}
}
