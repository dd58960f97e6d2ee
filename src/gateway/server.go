package gateway

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ecopickup/backend/src/gateway/response"
	"github.com/ecopickup/backend/src/pickup"
	"github.com/ecopickup/backend/src/realtime"
	"github.com/ecopickup/backend/src/utils/config"
	"github.com/ecopickup/backend/src/utils/model"
	"github.com/ecopickup/backend/src/utils/monitoring"
	"github.com/ecopickup/backend/src/utils/task"

	"github.com/gin-gonic/gin"
	"go.uber.org/ratelimit"
)

// Server is the public REST and websocket surface
type Server struct {
	*task.Task

	monitor *monitoring.Monitor
	store   *pickup.DatabaseStore
	manager *pickup.Manager
	hub     *realtime.Hub
	auth    *Auth

	httpServer *http.Server
	Router     *gin.Engine
	limiter    ratelimit.Limiter
}

func NewServer(config *config.Config) (self *Server) {
	self = new(Server)

	self.limiter = ratelimit.New(config.Api.RateLimit)

	self.Task = task.NewTask(config, "api-server").
		WithSubtaskFunc(self.run).
		WithOnStop(self.stop)

	return
}

func (self *Server) WithMonitor(monitor *monitoring.Monitor) *Server {
	self.monitor = monitor
	return self
}

func (self *Server) WithStore(store *pickup.DatabaseStore) *Server {
	self.store = store
	return self
}

func (self *Server) WithManager(manager *pickup.Manager) *Server {
	self.manager = manager
	return self
}

func (self *Server) WithHub(hub *realtime.Hub) *Server {
	self.hub = hub
	return self
}

func (self *Server) WithAuth(auth *Auth) *Server {
	self.auth = auth
	return self
}

func (self *Server) run() (err error) {
	gin.SetMode(gin.ReleaseMode)
	self.Router = gin.New()
	self.Router.Use(self.accessLog(), self.recovery(), self.throttle())
	self.registerRoutes()

	self.httpServer = &http.Server{
		Addr:    self.Config.Api.ListenAddress,
		Handler: self.Router,
	}

	self.Log.WithField("addr", self.Config.Api.ListenAddress).Info("Started API server")
	err = self.httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		self.Log.WithError(err).Error("API server failed")
		return
	}
	return nil
}

func (self *Server) stop() {
	ctx, cancel := context.WithTimeout(context.Background(), self.Config.StopTimeout)
	defer cancel()

	err := self.httpServer.Shutdown(ctx)
	if err != nil {
		self.Log.WithError(err).Error("Failed to gracefully shutdown API server")
	}
}

func (self *Server) registerRoutes() {
	self.Router.GET("/api/health", self.onHealth)
	self.Router.GET("/ws", self.hub.OnConnect)

	// Category listing is public so the item form can render before login
	self.Router.GET("/api/admin/categories", self.onGetCategories)

	api := self.Router.Group("/api", self.auth.Middleware())
	{
		api.POST("/items", self.onCreateItem)
		api.GET("/items/my-items", self.onGetMyItems)
		api.GET("/items/all", self.auth.RequireRole(model.RoleAgent, model.RoleAdmin), self.onGetAllItems)
		api.GET("/items/:id", self.onGetItem)
		api.DELETE("/items/:id", self.onDeleteItem)

		api.GET("/pickups/my-pickups", self.onGetMyPickups)
		api.GET("/pickups/agent-pickups", self.auth.RequireRole(model.RoleAgent), self.onGetAgentPickups)
		api.GET("/pickups/pending", self.auth.RequireRole(model.RoleAgent, model.RoleAdmin), self.onGetPendingPickups)
		api.GET("/pickups/all", self.auth.RequireRole(model.RoleAdmin), self.onGetAllPickups)
		api.POST("/pickups/:id/accept", self.onAcceptPickup)
		api.PUT("/pickups/:id/status", self.onUpdatePickupStatus)

		api.GET("/notifications", self.onGetMyNotifications)
		api.PUT("/notifications/:id/read", self.onMarkNotificationRead)
	}

	admin := api.Group("/admin", self.auth.RequireRole(model.RoleAdmin))
	{
		admin.GET("/users", self.onGetAllUsers)
		admin.GET("/agents", self.onGetAllAgents)
		admin.PUT("/agents/:id/verify", self.onVerifyAgent)
		admin.GET("/notifications", self.onGetAllNotifications)
		admin.GET("/analytics", self.onGetAnalytics)
		admin.POST("/categories", self.onCreateCategory)
		admin.PUT("/categories/:id", self.onUpdateCategory)
		admin.DELETE("/categories/:id", self.onDeleteCategory)
	}
}

func (self *Server) onHealth(c *gin.Context) {
	response.OK(c, gin.H{
		"status":   "ok",
		"sessions": self.hub.NumSessions(),
	})
}

func (self *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if self.monitor != nil {
			self.monitor.GetReport().Api.State.RequestsServed.Inc()
		}
		self.Log.WithField("method", c.Request.Method).
			WithField("path", c.Request.URL.Path).
			WithField("status", c.Writer.Status()).
			WithField("duration", time.Since(start)).
			Debug("Request handled")
	}
}

func (self *Server) recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered interface{}) {
		self.Log.WithField("panic", recovered).Error("Recovered from panic in handler")
		if self.monitor != nil {
			self.monitor.GetReport().Api.Errors.Internal.Inc()
		}
		response.Err(c, http.StatusInternalServerError, "Server error")
	})
}

func (self *Server) throttle() gin.HandlerFunc {
	return func(c *gin.Context) {
		self.limiter.Take()
		c.Next()
	}
}

// apiErrors returns the error counters, or a throwaway set when no
// monitor is attached
func (self *Server) apiErrors() *monitoring.ApiErrors {
	if self.monitor == nil {
		return new(monitoring.ApiErrors)
	}
	return &self.monitor.GetReport().Api.Errors
}

// errToResponse maps domain errors onto the response envelope. notFound
// overrides the message for ErrNotFound so handlers can name the missing
// entity.
func (self *Server) errToResponse(c *gin.Context, err error, notFound string) {
	apiErrors := self.apiErrors()
	switch {
	case errors.Is(err, pickup.ErrInvalidInput), errors.Is(err, pickup.ErrInvalidStatus):
		apiErrors.BadRequest.Inc()
		response.Err(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, pickup.ErrInvalidTransition):
		apiErrors.BadRequest.Inc()
		response.Err(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, pickup.ErrConflict):
		apiErrors.Conflict.Inc()
		response.Err(c, http.StatusConflict, "Pickup already assigned to another agent")
	case errors.Is(err, pickup.ErrForbidden):
		apiErrors.Forbidden.Inc()
		response.Err(c, http.StatusForbidden, "Access denied")
	case errors.Is(err, pickup.ErrNotFound):
		apiErrors.NotFound.Inc()
		if notFound == "" {
			notFound = "Not found"
		}
		response.Err(c, http.StatusNotFound, notFound)
	default:
		self.Log.WithError(err).Error("Request failed")
		apiErrors.Internal.Inc()
		response.Err(c, http.StatusInternalServerError, "Server error")
	}
}

func (self *Server) badRequest(c *gin.Context, message string) {
	self.apiErrors().BadRequest.Inc()
	response.Err(c, http.StatusBadRequest, message)
}
