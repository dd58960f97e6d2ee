package gateway

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ecopickup/backend/src/pickup"
	"github.com/ecopickup/backend/src/utils/config"
	"github.com/ecopickup/backend/src/utils/monitoring"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
)

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

type ServerTestSuite struct {
	suite.Suite
	config *config.Config
}

func (s *ServerTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	s.config = config.Default()
}

func (s *ServerTestSuite) respond(server *Server, err error) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	server.errToResponse(c, err, "")
	return recorder
}

func (s *ServerTestSuite) TestErrorMapping() {
	server := NewServer(s.config).WithMonitor(monitoring.NewMonitor())

	expected := map[error]int{
		pickup.ErrInvalidInput:      http.StatusBadRequest,
		pickup.ErrInvalidStatus:     http.StatusBadRequest,
		pickup.ErrInvalidTransition: http.StatusBadRequest,
		pickup.ErrConflict:          http.StatusConflict,
		pickup.ErrForbidden:         http.StatusForbidden,
		pickup.ErrNotFound:          http.StatusNotFound,
		errors.New("db down"):       http.StatusInternalServerError,
	}

	for err, status := range expected {
		s.Equal(status, s.respond(server, err).Code, err.Error())
	}
}

func (s *ServerTestSuite) TestErrorMappingWithoutMonitor() {
	server := NewServer(s.config)

	// Counters land in a throwaway set, the response still goes out
	for _, err := range []error{
		pickup.ErrNotFound,
		pickup.ErrConflict,
		errors.New("db down"),
	} {
		s.NotPanics(func() {
			s.respond(server, err)
		})
	}
}

func (s *ServerTestSuite) TestErrorMappingCountsPerClass() {
	monitor := monitoring.NewMonitor()
	server := NewServer(s.config).WithMonitor(monitor)

	s.respond(server, pickup.ErrConflict)
	s.respond(server, pickup.ErrNotFound)
	s.respond(server, pickup.ErrNotFound)

	report := monitor.GetReport()
	s.Equal(uint64(1), report.Api.Errors.Conflict.Load())
	s.Equal(uint64(2), report.Api.Errors.NotFound.Load())
}
