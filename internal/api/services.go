package api

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/redis/go-redis/v9"

	"newsblog/internal/api/interfaces"
	"newsblog/internal/auth"
	"newsblog/internal/credentials"
	"newsblog/internal/database/repositories"
	"newsblog/internal/refreshstore"
	"newsblog/internal/token"
	"newsblog/pkg/config"
	"newsblog/pkg/logger"
)

// Services contains all the dependencies for API handlers
type Services struct {
	DB     *sql.DB
	Redis  redis.UniversalClient // nil unless the redis token store is used
	Logger *logger.Logger
	Config *config.Config

	codec       *token.Codec
	authService *auth.Service
	store       *refreshstore.Store
}

// NewServices creates a new services container. redisClient may be nil when
// security.token_store is "sql".
func NewServices(db *sql.DB, redisClient redis.UniversalClient, log *logger.Logger, cfg *config.Config, opts ...token.Option) (*Services, error) {
	codec, err := token.NewCodec([]byte(cfg.Security.JWTSecret), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create token codec: %w", err)
	}
	issuer := token.NewIssuer(codec, cfg.Security.AccessTokenTTL, cfg.Security.RefreshTokenTTL)

	var repo refreshstore.Repository
	switch cfg.Security.TokenStore {
	case "redis":
		if redisClient == nil {
			return nil, fmt.Errorf("redis token store selected but no redis client configured")
		}
		repo = refreshstore.NewRedisRepository(redisClient)
	default:
		repo = refreshstore.NewSQLRepository(db)
	}
	store := refreshstore.NewStore(repo, cfg.Security.RefreshTokenCapacity)

	argon := cfg.Security.Argon2
	hasher := credentials.NewHasher(credentials.Params{
		Memory:      argon.Memory,
		Iterations:  argon.Iterations,
		Parallelism: argon.Parallelism,
		SaltLength:  argon.SaltLength,
		KeyLength:   argon.KeyLength,
	})

	authService := auth.NewService(auth.Deps{
		Codec:             codec,
		Issuer:            issuer,
		Tokens:            store,
		Users:             repositories.NewUserRepository(db),
		Hasher:            hasher,
		Audit:             repositories.NewAuditLogRepository(db),
		Logger:            log,
		PasswordMinLength: cfg.Security.PasswordMinLength,
	})

	return &Services{
		DB:          db,
		Redis:       redisClient,
		Logger:      log,
		Config:      cfg,
		codec:       codec,
		authService: authService,
		store:       store,
	}, nil
}

// Interface implementation methods
func (s *Services) GetLogger() *logger.Logger {
	return s.Logger
}

func (s *Services) AuthService() interfaces.AuthServiceInterface {
	return s.authService
}

func (s *Services) TokenDecoder() interfaces.TokenDecoder {
	return s.codec
}

func (s *Services) RefreshTokenCapacity() int {
	return s.store.Capacity()
}

// HealthChecks pings every backing store
func (s *Services) HealthChecks(ctx context.Context) map[string]error {
	checks := map[string]error{
		"database": s.DB.PingContext(ctx),
	}
	if s.Redis != nil {
		checks["redis"] = s.Redis.Ping(ctx).Err()
	}
	return checks
}
