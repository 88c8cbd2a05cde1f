package app

import (
	"github.com/blazebomb/vidai/internal/config"
	"github.com/blazebomb/vidai/internal/db"
	"github.com/blazebomb/vidai/internal/logger"
	"github.com/blazebomb/vidai/internal/redis"

	_ "github.com/lib/pq"
)

type Infra struct {
	DBCache *db.Cache
	Redis   *redis.Client
}

// setupInfra builds process-lifetime infrastructure. The database
// connection itself is established lazily: the cache connects on the
// first Acquire, and concurrent first users share that one attempt.
func setupInfra(cfg config.Config) (*Infra, error) {
	cache := db.NewPostgresCache(cfg.DatabaseDSN)

	logger.Info("database cache initialized", nil)

	// Redis is optional: without it the video listing just skips its
	// cache layer.
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		client, err := redis.New(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return nil, err
		}
		redisClient = client
		logger.Info("redis ready", nil)
	}

	return &Infra{
		DBCache: cache,
		Redis:   redisClient,
	}, nil
}

// Close releases everything setupInfra built: the redis client and
// whatever connection the cache established.
func (i *Infra) Close() error {
	if i.Redis != nil {
		if err := i.Redis.Close(); err != nil {
			logger.Error("redis close failed", map[string]any{
				"error": err.Error(),
			})
		}
	}
	return i.DBCache.Close()
}
