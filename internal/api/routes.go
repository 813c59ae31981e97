package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"newsblog/internal/api/handlers"
	"newsblog/internal/api/interfaces"
	"newsblog/internal/api/middlewares"
	"newsblog/pkg/config"
)

// authPrefixes are the mount points of the auth endpoints
var authPrefixes = []string{"/auth", "/api/v1/auth"}

// PublicRoutes are reachable without a bearer token. Everything else
// registered on the router requires an access token.
var PublicRoutes = middlewares.NewAllowlist(publicRouteList()...)

func publicRouteList() []middlewares.Route {
	routes := []middlewares.Route{
		{Method: http.MethodGet, Path: "/health"},
	}
	for _, prefix := range authPrefixes {
		routes = append(routes,
			middlewares.Route{Method: http.MethodPost, Path: prefix + "/register"},
			middlewares.Route{Method: http.MethodPost, Path: prefix + "/login"},
			middlewares.Route{Method: http.MethodPost, Path: prefix + "/refresh"},
			middlewares.Route{Method: http.MethodPost, Path: prefix + "/logout"},
		)
	}
	return routes
}

// SetupRoutes configures all API routes with proper middleware. A nil
// limiter disables rate limiting.
func SetupRoutes(router *gin.Engine, services interfaces.Services, cors config.CORSConfig, limiter *middlewares.RateLimiter) {
	log := services.GetLogger()

	// Global middleware
	router.Use(middlewares.RequestLogging(log))
	router.Use(middlewares.Recovery(log))
	router.Use(middlewares.Security())
	router.Use(middlewares.CORS(cors))
	if limiter != nil {
		router.Use(middlewares.RateLimit(limiter))
	}
	router.Use(middlewares.AuthGate(services.TokenDecoder(), PublicRoutes, log))

	router.GET("/health", handlers.HealthCheck(services))

	for _, prefix := range authPrefixes {
		setupAuthRoutes(router.Group(prefix), services)
	}

	v1 := router.Group("/api/v1")
	{
		v1.GET("/me", handlers.GetMe(services))
		v1.GET("/audit/logs", handlers.GetAuditLogs(services))
	}
}

func setupAuthRoutes(rg *gin.RouterGroup, services interfaces.Services) {
	rg.POST("/register", handlers.Register(services))
	rg.POST("/login", handlers.Login(services))
	rg.POST("/refresh", handlers.RefreshToken(services))
	rg.POST("/logout", handlers.Logout(services))
	rg.GET("/sessions", handlers.GetSessions(services))
}
