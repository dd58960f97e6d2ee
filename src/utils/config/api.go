package config

import (
	"time"

	"github.com/spf13/viper"
)

type Api struct {
	// Address the REST + websocket server listens on
	ListenAddress string

	// Address the monitoring server listens on
	MonitoringListenAddress string

	ServerRequestTimeout time.Duration

	// Requests per second let through by the rate limiter
	RateLimit int
}

func setApiDefaults() {
	viper.SetDefault("Api.ListenAddress", ":5001")
	viper.SetDefault("Api.MonitoringListenAddress", ":7777")
	viper.SetDefault("Api.ServerRequestTimeout", "30s")
	viper.SetDefault("Api.RateLimit", "100")
}
