package bootstrap

import (
	"context"
	"crypto/tls"
	"strings"

	"github.com/redis/go-redis/v9"

	appconfig "github.com/wolfman30/saathi/internal/config"
	"github.com/wolfman30/saathi/internal/crisislog"
	"github.com/wolfman30/saathi/pkg/logging"
)

// BuildRedisClient returns a configured Redis client or nil when disabled.
// When verify is true, a ping is issued and failures return nil.
func BuildRedisClient(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, verify bool) *redis.Client {
	if cfg == nil || strings.TrimSpace(cfg.RedisAddr) == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	redisOptions := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		redisOptions.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(redisOptions)
	if !verify {
		return client
	}
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis not available; crisis event log disabled", "error", err)
		_ = client.Close()
		return nil
	}
	return client
}

// BuildCrisisLog returns the Redis-backed crisis event log, or nil when Redis
// is not configured.
func BuildCrisisLog(redisClient *redis.Client, cfg *appconfig.Config, logger *logging.Logger) *crisislog.Store {
	if redisClient == nil {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	maxEvents := 0
	if cfg != nil {
		maxEvents = cfg.CrisisLogMaxEvents
	}
	logger.Info("crisis event log enabled", "max_events", maxEvents)
	return crisislog.NewStore(redisClient, maxEvents)
}
