package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

func TestConfigTestSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

type ConfigTestSuite struct {
	suite.Suite
}

func (s *ConfigTestSuite) TestDefaults() {
	config := Default()

	s.False(config.IsDevelopment)
	s.Equal(30*time.Second, config.StopTimeout)

	s.Equal(":5001", config.Api.ListenAddress)
	s.Equal(":7777", config.Api.MonitoringListenAddress)
	s.Equal(100, config.Api.RateLimit)

	s.Equal("pickup.", config.Redis.ChannelPrefix)
	s.Equal(5*time.Minute, config.Auth.PrincipalCacheTTL)
	s.Equal(5*time.Second, config.Realtime.WriteTimeout)
	s.Positive(config.Realtime.SessionBufferSize)
}

func (s *ConfigTestSuite) TestEnvOverride() {
	s.T().Setenv("PICKUP_API_LISTEN_ADDRESS", ":9999")
	s.T().Setenv("PICKUP_AUTH_TOKEN_SECRET", "test-secret")

	config, err := Load("")
	s.Require().NoError(err)

	s.Equal(":9999", config.Api.ListenAddress)
	s.Equal("test-secret", config.Auth.TokenSecret)
}
