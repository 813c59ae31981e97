package interfaces

import (
	"context"

	"newsblog/pkg/logger"
)

// Services defines the interface for API services
type Services interface {
	GetLogger() *logger.Logger
	AuthService() AuthServiceInterface
	TokenDecoder() TokenDecoder
	RefreshTokenCapacity() int
	HealthChecks(ctx context.Context) map[string]error
}
