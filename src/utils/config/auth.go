package config

import (
	"time"

	"github.com/spf13/viper"
)

type Auth struct {
	// HMAC secret used to verify bearer tokens issued by the auth service
	TokenSecret string

	// How long a verified principal is cached, keyed by token
	PrincipalCacheTTL time.Duration
}

func setAuthDefaults() {
	viper.SetDefault("Auth.TokenSecret", "development-secret")
	viper.SetDefault("Auth.PrincipalCacheTTL", "5m")
}
