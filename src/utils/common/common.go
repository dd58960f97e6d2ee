package common

import (
	"context"

	"github.com/ecopickup/backend/src/utils/config"
)

type contextKey int

const (
	configKey contextKey = iota
)

// SetConfig stores the configuration in the context
func SetConfig(ctx context.Context, config *config.Config) context.Context {
	return context.WithValue(ctx, configKey, config)
}

// GetConfig gets the configuration from the context
func GetConfig(ctx context.Context) *config.Config {
	return ctx.Value(configKey).(*config.Config)
}
