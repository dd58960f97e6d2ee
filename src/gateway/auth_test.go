package gateway

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ecopickup/backend/src/gateway/response"
	"github.com/ecopickup/backend/src/utils/config"
	"github.com/ecopickup/backend/src/utils/model"

	"github.com/gin-gonic/gin"
	"github.com/lestrrat-go/jwx/jwa"
	"github.com/lestrrat-go/jwx/jwt"
	"github.com/stretchr/testify/suite"
)

func TestAuthTestSuite(t *testing.T) {
	suite.Run(t, new(AuthTestSuite))
}

type AuthTestSuite struct {
	suite.Suite
	config *config.Config
	auth   *Auth
	router *gin.Engine
}

func (s *AuthTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	s.config = config.Default()
}

func (s *AuthTestSuite) SetupTest() {
	s.auth = NewAuth(s.config)

	s.router = gin.New()
	s.router.GET("/me", s.auth.Middleware(), func(c *gin.Context) {
		principal := GetPrincipal(c)
		response.OK(c, gin.H{"id": principal.Id, "role": principal.Role})
	})
	s.router.GET("/admin", s.auth.Middleware(), s.auth.RequireRole(model.RoleAdmin), func(c *gin.Context) {
		response.OK(c, nil)
	})
}

func (s *AuthTestSuite) signToken(userId, role string) string {
	token := jwt.New()
	s.Require().NoError(token.Set(jwt.SubjectKey, userId))
	s.Require().NoError(token.Set("role", role))
	s.Require().NoError(token.Set(jwt.ExpirationKey, time.Now().Add(time.Hour)))

	signed, err := jwt.Sign(token, jwa.HS256, []byte(s.config.Auth.TokenSecret))
	s.Require().NoError(err)
	return string(signed)
}

func (s *AuthTestSuite) get(path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	s.router.ServeHTTP(recorder, req)
	return recorder
}

func (s *AuthTestSuite) TestMissingToken() {
	recorder := s.get("/me", "")
	s.Equal(http.StatusUnauthorized, recorder.Code)

	var envelope response.Envelope
	s.Require().NoError(json.Unmarshal(recorder.Body.Bytes(), &envelope))
	s.False(envelope.Success)
	s.Equal("Authentication required", envelope.Message)
}

func (s *AuthTestSuite) TestInvalidToken() {
	recorder := s.get("/me", "not-a-token")
	s.Equal(http.StatusUnauthorized, recorder.Code)
}

func (s *AuthTestSuite) TestWrongSignature() {
	token := jwt.New()
	s.Require().NoError(token.Set(jwt.SubjectKey, "u1"))
	signed, err := jwt.Sign(token, jwa.HS256, []byte("some-other-secret"))
	s.Require().NoError(err)

	recorder := s.get("/me", string(signed))
	s.Equal(http.StatusUnauthorized, recorder.Code)
}

func (s *AuthTestSuite) TestExpiredToken() {
	token := jwt.New()
	s.Require().NoError(token.Set(jwt.SubjectKey, "u1"))
	s.Require().NoError(token.Set(jwt.ExpirationKey, time.Now().Add(-time.Hour)))
	signed, err := jwt.Sign(token, jwa.HS256, []byte(s.config.Auth.TokenSecret))
	s.Require().NoError(err)

	recorder := s.get("/me", string(signed))
	s.Equal(http.StatusUnauthorized, recorder.Code)
}

func (s *AuthTestSuite) TestValidToken() {
	recorder := s.get("/me", s.signToken("u1", model.RoleUser))
	s.Equal(http.StatusOK, recorder.Code)

	var envelope response.Envelope
	s.Require().NoError(json.Unmarshal(recorder.Body.Bytes(), &envelope))
	s.True(envelope.Success)

	data := envelope.Data.(map[string]interface{})
	s.Equal("u1", data["id"])
	s.Equal(model.RoleUser, data["role"])
}

func (s *AuthTestSuite) TestCachedToken() {
	token := s.signToken("u1", model.RoleUser)

	s.Equal(http.StatusOK, s.get("/me", token).Code)

	_, cached := s.auth.principals.Get(token)
	s.True(cached)

	s.Equal(http.StatusOK, s.get("/me", token).Code)
}

func (s *AuthTestSuite) TestRoleGate() {
	recorder := s.get("/admin", s.signToken("u1", model.RoleUser))
	s.Equal(http.StatusForbidden, recorder.Code)

	var envelope response.Envelope
	s.Require().NoError(json.Unmarshal(recorder.Body.Bytes(), &envelope))
	s.Equal("Access denied", envelope.Message)

	s.Equal(http.StatusOK, s.get("/admin", s.signToken("a1", model.RoleAdmin)).Code)
}
