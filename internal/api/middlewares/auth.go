package middlewares

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"newsblog/internal/api/interfaces"
	"newsblog/internal/api/models"
	"newsblog/internal/token"
	"newsblog/pkg/logger"
)

// Context keys set by AuthGate
const (
	ContextUserID   = "user_id"
	ContextUsername = "username"
)

var (
	ErrMissingHeader   = errors.New("authorization header is missing")
	ErrMalformedHeader = errors.New("bearer token malformed")
)

// Route identifies a registered route by method and gin path pattern
type Route struct {
	Method string
	Path   string
}

// Allowlist is a static set of routes that skip authentication
type Allowlist map[Route]struct{}

func NewAllowlist(routes ...Route) Allowlist {
	a := make(Allowlist, len(routes))
	for _, r := range routes {
		a[r] = struct{}{}
	}
	return a
}

// Allows reports whether method and path are public
func (a Allowlist) Allows(method, path string) bool {
	_, ok := a[Route{Method: method, Path: path}]
	return ok
}

// AuthGate requires a valid access token on every matched route that is
// not in public. Unmatched paths fall through to the 404 handler.
func AuthGate(decoder interfaces.TokenDecoder, public Allowlist, log *logger.Logger) gin.HandlerFunc {
	log = log.WithComponent("auth_gate")

	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" || public.Allows(c.Request.Method, route) {
			c.Next()
			return
		}

		raw, err := extractToken(c)
		if err != nil {
			code := models.ErrCodeMissingHeader
			message := "Authorization header is missing"
			if errors.Is(err, ErrMalformedHeader) {
				code = models.ErrCodeMalformedHeader
				message = "Bearer token malformed"
			}
			abortUnauthorized(c, code, message)
			return
		}

		claims, err := decoder.Decode(raw)
		if err != nil {
			log.SecurityLogger("token_rejected", 0, err.Error()+" on "+c.Request.Method+" "+route)
			abortUnauthorized(c, models.ErrCodeInvalidToken, "Invalid or expired token")
			return
		}
		if claims.Kind != token.KindAccess {
			log.SecurityLogger("token_rejected", claims.UserID, "non-access token used as bearer on "+route)
			abortUnauthorized(c, models.ErrCodeInvalidToken, "Invalid or expired token")
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)
		c.Next()
	}
}

// CurrentUser returns the identity AuthGate attached to the request
func CurrentUser(c *gin.Context) (userID int64, username string, ok bool) {
	v, exists := c.Get(ContextUserID)
	if !exists {
		return 0, "", false
	}
	userID, ok = v.(int64)
	return userID, c.GetString(ContextUsername), ok
}

func abortUnauthorized(c *gin.Context, code, message string) {
	c.Header("WWW-Authenticate", `Bearer realm="newsblog"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, models.BaseResponse{
		Success: false,
		Error: &models.ErrorInfo{
			Code:    code,
			Message: message,
		},
		Timestamp: time.Now().Unix(),
		RequestID: c.GetString(ContextRequestID),
	})
}

// extractToken extracts the bearer token from the Authorization header
func extractToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", ErrMissingHeader
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", ErrMalformedHeader
	}

	raw := strings.TrimSpace(parts[1])
	if raw == "" || strings.ContainsAny(raw, " \t") {
		return "", ErrMalformedHeader
	}
	return raw, nil
}
