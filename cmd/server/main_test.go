package main

import (
	"io"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsblog/pkg/config"
	"newsblog/pkg/logger"
)

func TestConfigureRuntime(t *testing.T) {
	t.Cleanup(func() { gin.SetMode(gin.TestMode) })

	tests := []struct {
		mode      string
		wantGin   string
		wantLevel logrus.Level
		wantJSON  bool
	}{
		{"production", gin.ReleaseMode, logrus.InfoLevel, true},
		{"release", gin.ReleaseMode, logrus.InfoLevel, true},
		{"debug", gin.DebugMode, logrus.DebugLevel, false},
		{"development", gin.DebugMode, logrus.DebugLevel, false},
		{"test", gin.TestMode, logrus.InfoLevel, false},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			cfg := &config.Config{Server: config.ServerConfig{Mode: tt.mode}}
			l := logger.NewWithWriter("info", io.Discard)

			require.NoError(t, configureRuntime(cfg, l))

			assert.Equal(t, tt.wantGin, gin.Mode())
			assert.Equal(t, tt.wantLevel, l.GetLevel())
			_, isJSON := l.Formatter.(*logrus.JSONFormatter)
			assert.Equal(t, tt.wantJSON, isJSON)
		})
	}
}

func TestRedisOptions(t *testing.T) {
	t.Run("host and port", func(t *testing.T) {
		opts, err := redisOptions(config.RedisConfig{Addr: "cache:6379", DB: 2, PoolSize: 7})
		require.NoError(t, err)
		assert.Equal(t, "cache:6379", opts.Addr)
		assert.Equal(t, 2, opts.DB)
		assert.Equal(t, 7, opts.PoolSize)
	})

	t.Run("url", func(t *testing.T) {
		opts, err := redisOptions(config.RedisConfig{
			Addr:        "redis://:s3cret@cache:6380/3",
			DialTimeout: 2 * time.Second,
		})
		require.NoError(t, err)
		assert.Equal(t, "cache:6380", opts.Addr)
		assert.Equal(t, 3, opts.DB)
		assert.Equal(t, "s3cret", opts.Password)
		assert.Equal(t, 2*time.Second, opts.DialTimeout)
	})

	t.Run("explicit password wins over url", func(t *testing.T) {
		opts, err := redisOptions(config.RedisConfig{Addr: "redis://:old@cache:6379/0", Password: "new"})
		require.NoError(t, err)
		assert.Equal(t, "new", opts.Password)
	})

	t.Run("bad url", func(t *testing.T) {
		_, err := redisOptions(config.RedisConfig{Addr: "http://cache:6379"})
		assert.ErrorContains(t, err, "invalid redis url")
	})
}
