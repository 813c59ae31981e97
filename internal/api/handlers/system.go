package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"newsblog/internal/api/interfaces"
	"newsblog/internal/api/middlewares"
	"newsblog/internal/api/models"
	"newsblog/internal/auth"
	"newsblog/internal/database"
)

const version = "1.0.0"

// HealthCheck reports the status of the service and its backing stores
func HealthCheck(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := "healthy"
		code := http.StatusOK
		checks := make(map[string]string)
		for name, err := range services.HealthChecks(ctx) {
			if err != nil {
				services.GetLogger().Warning("Health check failed", "check", name, "error", err.Error())
				checks[name] = "unavailable"
				status = "degraded"
				code = http.StatusServiceUnavailable
				continue
			}
			checks[name] = "ok"
		}

		c.JSON(code, models.HealthResponse{
			Status:    status,
			Timestamp: time.Now().Unix(),
			Version:   version,
			Checks:    checks,
		})
	}
}

// GetMe returns the identity bound to the bearer token
func GetMe(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, username, ok := currentUser(c)
		if !ok {
			return
		}

		resp := models.MeResponse{UserID: userID, Username: username}
		user, err := services.AuthService().User(c.Request.Context(), userID)
		switch {
		case err == nil:
			resp.User = models.NewUserResponse(user)
		case errors.Is(err, database.ErrNotFound):
			// the account is gone but the access token has not expired yet
		default:
			internalError(c, services, "failed to load user", err)
			return
		}

		c.JSON(http.StatusOK, models.Success("", resp, c.GetString(middlewares.ContextRequestID)))
	}
}

// requestContext carries the client address into the auth service
func requestContext(c *gin.Context) context.Context {
	return auth.WithClientIP(c.Request.Context(), c.ClientIP())
}

func internalError(c *gin.Context, services interfaces.Services, msg string, err error) {
	services.GetLogger().WithError(err).Error(msg, "request_id", c.GetString(middlewares.ContextRequestID))
	respondError(c, models.ErrInternal())
}
