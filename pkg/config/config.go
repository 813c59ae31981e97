package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Security SecurityConfig `mapstructure:"security"`
	API      APIConfig      `mapstructure:"api"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // gin mode: debug, release, test
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	TLS             TLSConfig     `mapstructure:"tls"`
}

// TLSConfig holds TLS/SSL configuration
type TLSConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	CertFile string `mapstructure:"cert_file"`
	KeyFile  string `mapstructure:"key_file"`
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	Type         string        `mapstructure:"type"` // postgres, sqlite
	URL          string        `mapstructure:"url"`  // full DSN, wins over the parts below
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	User         string        `mapstructure:"user"`
	Password     string        `mapstructure:"password"`
	DBName       string        `mapstructure:"dbname"`
	Path         string        `mapstructure:"path"`    // For SQLite
	SSLMode      string        `mapstructure:"sslmode"` // For PostgreSQL
	MaxOpenConns int           `mapstructure:"max_open_conns"`
	MaxIdleConns int           `mapstructure:"max_idle_conns"`
	MaxLifetime  time.Duration `mapstructure:"max_lifetime"`
}

// RedisConfig holds Redis configuration for the refresh token store
type RedisConfig struct {
	Addr         string        `mapstructure:"addr"` // host:port or redis:// URL
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Enabled      bool          `mapstructure:"enabled"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`  // debug, info, warn, error
	Format     string `mapstructure:"format"` // json, text
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"` // MB
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"` // days
	Compress   bool   `mapstructure:"compress"`
}

// SecurityConfig holds token and password settings
type SecurityConfig struct {
	JWTSecret            string        `mapstructure:"jwt_secret"`
	AccessTokenTTL       time.Duration `mapstructure:"access_token_ttl"`
	RefreshTokenTTL      time.Duration `mapstructure:"refresh_token_ttl"`
	RefreshTokenCapacity int           `mapstructure:"refresh_token_capacity"`
	TokenStore           string        `mapstructure:"token_store"` // sql, redis
	PasswordMinLength    int           `mapstructure:"password_min_length"`
	Argon2               Argon2Config  `mapstructure:"argon2"`
}

// Argon2Config holds password hashing cost parameters
type Argon2Config struct {
	Memory      uint32 `mapstructure:"memory"` // KiB
	Iterations  uint32 `mapstructure:"iterations"`
	Parallelism uint8  `mapstructure:"parallelism"`
	SaltLength  uint32 `mapstructure:"salt_length"`
	KeyLength   uint32 `mapstructure:"key_length"`
}

// APIConfig holds API-related configuration
type APIConfig struct {
	RateLimit  int        `mapstructure:"rate_limit"` // requests per minute
	BurstLimit int        `mapstructure:"burst_limit"`
	CORS       CORSConfig `mapstructure:"cors"`
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

// LoadConfig loads configuration from .env, the config file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// .env is optional; real environment variables win over it
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("NEWSBLOG")

	if configPath != "" {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
				fmt.Printf("Warning: Config file not found at %s, using defaults\n", configPath)
			} else {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	overrideWithEnvVars(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "5000")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "10s")

	// Database defaults
	v.SetDefault("database.type", "sqlite")
	v.SetDefault("database.path", "./newsblog.db")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_lifetime", "5m")

	// Redis defaults
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.dial_timeout", "5s")
	v.SetDefault("redis.read_timeout", "3s")
	v.SetDefault("redis.write_timeout", "3s")
	v.SetDefault("redis.enabled", false)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.file", "./logs/app.log")
	v.SetDefault("logging.max_size", 100)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("logging.max_age", 28)
	v.SetDefault("logging.compress", true)

	// Security defaults
	v.SetDefault("security.access_token_ttl", "15m")
	v.SetDefault("security.refresh_token_ttl", "168h")
	v.SetDefault("security.refresh_token_capacity", 5)
	v.SetDefault("security.token_store", "sql")
	v.SetDefault("security.password_min_length", 6)
	v.SetDefault("security.argon2.memory", 64*1024)
	v.SetDefault("security.argon2.iterations", 3)
	v.SetDefault("security.argon2.parallelism", 1)
	v.SetDefault("security.argon2.salt_length", 16)
	v.SetDefault("security.argon2.key_length", 32)

	// API defaults
	v.SetDefault("api.rate_limit", 100)
	v.SetDefault("api.burst_limit", 200)
	v.SetDefault("api.cors.allowed_origins", []string{"http://localhost:3000", "http://localhost:5000"})
	v.SetDefault("api.cors.allow_credentials", true)
	v.SetDefault("api.cors.max_age", 86400)
}

// overrideWithEnvVars overrides config with well-known environment variables
func overrideWithEnvVars(v *viper.Viper) {
	envMappings := map[string]string{
		"JWT_SECRET":     "security.jwt_secret",
		"DATABASE_URL":   "database.url",
		"DB_PASSWORD":    "database.password",
		"DB_USER":        "database.user",
		"REDIS_URL":      "redis.addr",
		"REDIS_PASSWORD": "redis.password",
		"GIN_MODE":       "server.mode",
		"PORT":           "server.port",
	}

	for envVar, configKey := range envMappings {
		if value := os.Getenv(envVar); value != "" {
			v.Set(configKey, value)
		}
	}
}

// validateConfig validates the loaded configuration
func validateConfig(config *Config) error {
	if config.Security.JWTSecret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if config.Security.AccessTokenTTL <= 0 {
		return fmt.Errorf("access token ttl must be positive")
	}

	if config.Security.RefreshTokenTTL <= config.Security.AccessTokenTTL {
		return fmt.Errorf("refresh token ttl must exceed access token ttl")
	}

	if config.Security.RefreshTokenCapacity < 1 {
		return fmt.Errorf("refresh token capacity must be at least 1")
	}

	switch config.Security.TokenStore {
	case "sql":
	case "redis":
		if !config.Redis.Enabled {
			return fmt.Errorf("redis token store requires redis.enabled")
		}
	default:
		return fmt.Errorf("unsupported token store: %s", config.Security.TokenStore)
	}

	if config.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	switch config.Database.Type {
	case "postgres":
		if config.Database.URL == "" && (config.Database.Host == "" || config.Database.User == "") {
			return fmt.Errorf("postgres requires url or host and user")
		}
	case "sqlite":
		if config.Database.Path == "" && config.Database.URL == "" {
			return fmt.Errorf("sqlite requires path")
		}
	default:
		return fmt.Errorf("unsupported database type: %s", config.Database.Type)
	}

	return nil
}

// DSN returns the driver connection string for the configured database
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	switch d.Type {
	case "postgres":
		sslMode := d.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			d.Host, d.Port, d.User, d.Password, d.DBName, sslMode)
	case "sqlite":
		return d.Path
	default:
		return ""
	}
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Mode == "debug" || c.Server.Mode == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Mode == "release" || c.Server.Mode == "production"
}

// GetServerAddress returns the full server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

// SanitizeForLogging returns a copy of the config with sensitive data redacted
func (c *Config) SanitizeForLogging() *Config {
	sanitized := *c

	if sanitized.Database.Password != "" {
		sanitized.Database.Password = "[REDACTED]"
	}

	if sanitized.Database.URL != "" {
		sanitized.Database.URL = "[REDACTED]"
	}

	if sanitized.Security.JWTSecret != "" {
		sanitized.Security.JWTSecret = "[REDACTED]"
	}

	if sanitized.Redis.Password != "" {
		sanitized.Redis.Password = "[REDACTED]"
	}

	return &sanitized
}
