package config

import (
	"time"

	"github.com/spf13/viper"
)

type Realtime struct {
	// How long a single websocket write may take before the session is dropped
	WriteTimeout time.Duration

	// Size of the per-session outgoing event buffer
	SessionBufferSize int
}

func setRealtimeDefaults() {
	viper.SetDefault("Realtime.WriteTimeout", "5s")
	viper.SetDefault("Realtime.SessionBufferSize", "16")
}
