package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsblog/internal/api/interfaces"
	"newsblog/internal/api/middlewares"
	"newsblog/internal/api/models"
	"newsblog/internal/auth"
	"newsblog/internal/database"
	"newsblog/pkg/logger"
)

type stubAuth struct {
	calls int
}

func (s *stubAuth) Login(context.Context, string, string) (*auth.TokenPair, error) {
	return nil, auth.ErrInvalidCredentials
}

func (s *stubAuth) Refresh(context.Context, string) (*auth.AccessGrant, error) {
	return nil, auth.ErrUnauthorized
}

func (s *stubAuth) Logout(context.Context, string) {}

func (s *stubAuth) Register(context.Context, string, string, string) (*auth.TokenPair, error) {
	return nil, auth.ErrConflict
}

func (s *stubAuth) Sessions(context.Context, int64) (int, error) {
	s.calls++
	return 3, nil
}

func (s *stubAuth) AuditTrail(context.Context, int64, int, int) ([]database.AuditLog, error) {
	s.calls++
	return nil, nil
}

func (s *stubAuth) User(_ context.Context, id int64) (*database.User, error) {
	s.calls++
	return &database.User{ID: id, Name: "ada"}, nil
}

type stubServices struct {
	auth *stubAuth
}

func (s stubServices) GetLogger() *logger.Logger { return logger.Discard() }
func (s stubServices) AuthService() interfaces.AuthServiceInterface { return s.auth }
func (s stubServices) TokenDecoder() interfaces.TokenDecoder { return nil }
func (s stubServices) RefreshTokenCapacity() int { return 5 }
func (s stubServices) HealthChecks(context.Context) map[string]error { return nil }

func TestProtectedHandlers_RequireIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)

	routes := []struct {
		path    string
		handler func(interfaces.Services) gin.HandlerFunc
	}{
		{"/sessions", GetSessions},
		{"/me", GetMe},
		{"/audit", GetAuditLogs},
	}

	for _, rt := range routes {
		t.Run(rt.path+" without identity", func(t *testing.T) {
			svc := stubServices{auth: &stubAuth{}}
			router := gin.New()
			router.GET(rt.path, rt.handler(svc))

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, rt.path, nil))

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			var body models.BaseResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			require.NotNil(t, body.Error)
			assert.Equal(t, models.ErrCodeUnauthorized, body.Error.Code)
			assert.Zero(t, svc.auth.calls, "service must not be asked about user 0")
		})

		t.Run(rt.path+" with identity", func(t *testing.T) {
			svc := stubServices{auth: &stubAuth{}}
			router := gin.New()
			router.GET(rt.path, func(c *gin.Context) {
				c.Set(middlewares.ContextUserID, int64(42))
				c.Set(middlewares.ContextUsername, "ada")
				c.Next()
			}, rt.handler(svc))

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, rt.path, nil))

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, 1, svc.auth.calls)
		})
	}
}
