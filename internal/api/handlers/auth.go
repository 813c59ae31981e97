package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"newsblog/internal/api/interfaces"
	"newsblog/internal/api/middlewares"
	"newsblog/internal/api/models"
	"newsblog/internal/auth"
)

const tokenTypeBearer = "bearer"

// Login authenticates with email and password and returns a token pair
func Login(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, bindingError(err))
			return
		}

		pair, err := services.AuthService().Login(requestContext(c), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				respondError(c, models.ErrInvalidCredentials())
				return
			}
			internalError(c, services, "login failed", err)
			return
		}

		c.JSON(http.StatusOK, authResponse(pair))
	}
}

// Register creates an account and logs it in
func Register(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, bindingError(err))
			return
		}

		pair, err := services.AuthService().Register(requestContext(c), req.Name, req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrConflict):
				respondError(c, models.ErrEmailTaken())
			case errors.Is(err, auth.ErrValidation):
				respondError(c, models.NewAPIError(models.ErrCodeValidation, err.Error(), http.StatusBadRequest))
			default:
				internalError(c, services, "registration failed", err)
			}
			return
		}

		c.JSON(http.StatusCreated, authResponse(pair))
	}
}

// RefreshToken exchanges a refresh token for a new access token
func RefreshToken(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.RefreshRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			// a missing token is indistinguishable from a bad one
			respondError(c, models.ErrInvalidRefreshToken())
			return
		}

		grant, err := services.AuthService().Refresh(requestContext(c), req.RefreshToken)
		if err != nil {
			if errors.Is(err, auth.ErrUnauthorized) {
				respondError(c, models.ErrInvalidRefreshToken())
				return
			}
			internalError(c, services, "refresh failed", err)
			return
		}

		c.JSON(http.StatusOK, models.RefreshResponse{
			Success:     true,
			AccessToken: grant.AccessToken,
			TokenType:   tokenTypeBearer,
			ExpiresIn:   grant.ExpiresIn,
		})
	}
}

// Logout revokes the given refresh token. It always succeeds.
func Logout(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.LogoutRequest
		if err := c.ShouldBindJSON(&req); err == nil && req.RefreshToken != "" {
			services.AuthService().Logout(requestContext(c), req.RefreshToken)
		}

		c.JSON(http.StatusOK, models.LogoutResponse{Success: true})
	}
}

// GetSessions reports how many refresh tokens the caller holds
func GetSessions(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _, ok := currentUser(c)
		if !ok {
			return
		}

		active, err := services.AuthService().Sessions(c.Request.Context(), userID)
		if err != nil {
			internalError(c, services, "failed to count sessions", err)
			return
		}

		c.JSON(http.StatusOK, models.Success("", models.SessionsResponse{
			Active:   active,
			Capacity: services.RefreshTokenCapacity(),
		}, c.GetString(middlewares.ContextRequestID)))
	}
}

func authResponse(pair *auth.TokenPair) models.AuthResponse {
	return models.AuthResponse{
		Success:      true,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    tokenTypeBearer,
		ExpiresIn:    pair.ExpiresIn,
		User:         models.NewUserResponse(pair.User),
	}
}
