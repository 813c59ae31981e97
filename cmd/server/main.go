package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"newsblog/internal/api"
	"newsblog/internal/api/middlewares"
	"newsblog/internal/database"
	"newsblog/pkg/config"
	"newsblog/pkg/logger"
)

func main() {
	configPath := flag.String("config", "configs/server.yaml", "path to the config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	appLogger := logger.NewLogger(cfg.Logging)
	defer appLogger.Close()

	if err := configureRuntime(cfg, appLogger); err != nil {
		log.Fatal("Failed to configure runtime: ", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, appLogger); err != nil {
		appLogger.WithError(err).Error("Server stopped with error")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, appLogger *logger.Logger) error {
	appLogger.WithField("config", cfg.SanitizeForLogging()).Debug("Loaded configuration")

	db, err := database.NewConnection(ctx, &cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(ctx, db, cfg.Database.Type); err != nil {
		return err
	}

	var redisClient redis.UniversalClient
	if cfg.Redis.Enabled {
		opts, err := redisOptions(cfg.Redis)
		if err != nil {
			return err
		}
		client := redis.NewClient(opts)
		defer client.Close()
		if err := client.Ping(ctx).Err(); err != nil {
			return err
		}
		redisClient = client
	}

	services, err := api.NewServices(db, redisClient, appLogger, cfg)
	if err != nil {
		return err
	}

	router := gin.New()
	var limiter *middlewares.RateLimiter
	if cfg.API.RateLimit > 0 {
		limiter = middlewares.NewRateLimiter(cfg.API.RateLimit, cfg.API.BurstLimit)
	}
	api.SetupRoutes(router, services, cfg.API.CORS, limiter)

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		appLogger.Info("Starting newsblog API", "addr", srv.Addr, "token_store", cfg.Security.TokenStore)
		if cfg.Server.TLS.Enabled {
			errCh <- srv.ListenAndServeTLS(cfg.Server.TLS.CertFile, cfg.Server.TLS.KeyFile)
			return
		}
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	appLogger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// configureRuntime maps server.mode onto gin and the logger. Production logs
// JSON, development logs at debug level.
func configureRuntime(cfg *config.Config, appLogger *logger.Logger) error {
	switch {
	case cfg.IsProduction():
		gin.SetMode(gin.ReleaseMode)
		appLogger.SetFormatter("json")
	case cfg.IsDevelopment():
		gin.SetMode(gin.DebugMode)
		return appLogger.SetLogLevel("debug")
	default:
		gin.SetMode(gin.TestMode)
	}
	return nil
}

// redisOptions accepts either host:port or a redis:// URL in redis.addr.
// Explicit password and pool settings win over the URL.
func redisOptions(cfg config.RedisConfig) (*redis.Options, error) {
	opts := &redis.Options{Addr: cfg.Addr, DB: cfg.DB}
	if strings.Contains(cfg.Addr, "://") {
		parsed, err := redis.ParseURL(cfg.Addr)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		opts = parsed
	}

	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if cfg.DialTimeout > 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if cfg.ReadTimeout > 0 {
		opts.ReadTimeout = cfg.ReadTimeout
	}
	if cfg.WriteTimeout > 0 {
		opts.WriteTimeout = cfg.WriteTimeout
	}
	return opts, nil
}
