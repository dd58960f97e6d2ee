package gateway

import (
	"net/http"
	"strings"

	"github.com/ecopickup/backend/src/gateway/response"
	"github.com/ecopickup/backend/src/pickup"
	"github.com/ecopickup/backend/src/utils/config"
	"github.com/ecopickup/backend/src/utils/logger"
	"github.com/ecopickup/backend/src/utils/monitoring"

	"github.com/gin-gonic/gin"
	"github.com/lestrrat-go/jwx/jwa"
	"github.com/lestrrat-go/jwx/jwt"
	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
)

const principalKey = "principal"

// Auth resolves bearer tokens issued by the account service into a
// Principal. Verified tokens are cached so hot clients don't pay the
// signature check on every request.
type Auth struct {
	Config *config.Config
	Log    *logrus.Entry

	monitor    *monitoring.Monitor
	principals *cache.Cache
}

func NewAuth(config *config.Config) (self *Auth) {
	self = new(Auth)
	self.Config = config
	self.Log = logger.NewSublogger("auth")
	self.principals = cache.New(config.Auth.PrincipalCacheTTL, 2*config.Auth.PrincipalCacheTTL)
	return
}

func (self *Auth) WithMonitor(monitor *monitoring.Monitor) *Auth {
	self.monitor = monitor
	return self
}

// Middleware rejects requests without a valid bearer token
func (self *Auth) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c)
		if !ok {
			self.unauthorized(c, "Authentication required")
			return
		}

		if cached, ok := self.principals.Get(raw); ok {
			c.Set(principalKey, cached.(pickup.Principal))
			c.Next()
			return
		}

		principal, err := self.verify(raw)
		if err != nil {
			self.Log.WithError(err).Debug("Token verification failed")
			self.unauthorized(c, "Invalid or expired token")
			return
		}

		self.principals.SetDefault(raw, principal)
		c.Set(principalKey, principal)
		c.Next()
	}
}

// RequireRole gates a route group to the given roles. Must run after
// Middleware.
func (self *Auth) RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := GetPrincipal(c)
		for _, role := range roles {
			if principal.Role == role {
				c.Next()
				return
			}
		}
		if self.monitor != nil {
			self.monitor.GetReport().Api.Errors.Forbidden.Inc()
		}
		response.Err(c, http.StatusForbidden, "Access denied")
	}
}

func (self *Auth) verify(raw string) (principal pickup.Principal, err error) {
	token, err := jwt.Parse([]byte(raw),
		jwt.WithVerify(jwa.HS256, []byte(self.Config.Auth.TokenSecret)),
		jwt.WithValidate(true))
	if err != nil {
		return
	}

	principal.Id = token.Subject()
	if role, ok := token.Get("role"); ok {
		principal.Role, _ = role.(string)
	}
	return
}

func (self *Auth) unauthorized(c *gin.Context, message string) {
	if self.monitor != nil {
		self.monitor.GetReport().Api.Errors.Unauthorized.Inc()
	}
	response.Err(c, http.StatusUnauthorized, message)
}

func bearerToken(c *gin.Context) (token string, ok bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	token = strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	return token, token != ""
}

// GetPrincipal returns the principal resolved by the auth middleware.
// Routes behind Middleware always have one.
func GetPrincipal(c *gin.Context) pickup.Principal {
	principal, _ := c.MustGet(principalKey).(pickup.Principal)
	return principal
}
