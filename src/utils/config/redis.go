package config

import (
	"time"

	"github.com/spf13/viper"
)

type Redis struct {
	Port            uint16
	Host            string
	User            string
	Password        string
	DB              int
	MinIdleConns    int
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxIdleTime time.Duration
	ConnMaxLifetime time.Duration

	// Prefix prepended to every published channel name
	ChannelPrefix string

	// Is mirroring events to Redis enabled
	Enabled bool

	// Backoff setup for failed publishes
	MaxElapsedTime time.Duration
	MaxInterval    time.Duration

	MaxWorkers   int
	MaxQueueSize int
}

func setRedisDefaults() {
	viper.SetDefault("Redis.Port", "6379")
	viper.SetDefault("Redis.Host", "127.0.0.1")
	viper.SetDefault("Redis.User", "")
	viper.SetDefault("Redis.Password", "")
	viper.SetDefault("Redis.DB", "0")
	viper.SetDefault("Redis.MinIdleConns", "1")
	viper.SetDefault("Redis.MaxIdleConns", "4")
	viper.SetDefault("Redis.MaxOpenConns", "10")
	viper.SetDefault("Redis.ConnMaxIdleTime", "10m")
	viper.SetDefault("Redis.ConnMaxLifetime", "1h")
	viper.SetDefault("Redis.ChannelPrefix", "pickup.")
	viper.SetDefault("Redis.Enabled", "false")
	viper.SetDefault("Redis.MaxElapsedTime", "1m")
	viper.SetDefault("Redis.MaxInterval", "10s")
	viper.SetDefault("Redis.MaxWorkers", "5")
	viper.SetDefault("Redis.MaxQueueSize", "100")
}
