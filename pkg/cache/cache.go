package cache

import (
	"context"
	"time"

	"github.com/amanabooks/bookstore-backend/config"
	"github.com/amanabooks/bookstore-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// Init initializes the Redis connection
func Init(cfg *config.RedisConfig) error {
	logger.Info("Initializing Redis connection", map[string]interface{}{
		"host": cfg.Host,
		"port": cfg.Port,
		"db":   cfg.DB,
	})

	client = redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", err, map[string]interface{}{
			"host": cfg.Host,
			"port": cfg.Port,
		})
		client = nil
		return err
	}

	logger.Info("Redis connection established successfully")
	return nil
}

// Enabled reports whether a Redis connection is available. The server runs
// without caching when Redis is down.
func Enabled() bool {
	return client != nil
}

// Close closes the Redis connection
func Close() error {
	if client != nil {
		logger.Info("Closing Redis connection")
		return client.Close()
	}
	return nil
}

const catalogKey = "catalog:books"

// SetCatalog caches the serialized book listing. Only the catalog listing is
// ever cached; cart views and badge counts always read from the store.
func SetCatalog(ctx context.Context, payload []byte, ttl time.Duration) error {
	if client == nil {
		return nil
	}

	if err := client.Set(ctx, catalogKey, payload, ttl).Err(); err != nil {
		logger.Error("Failed to cache catalog listing", err)
		return err
	}

	logger.Debug("Catalog listing cached", map[string]interface{}{
		"ttl": ttl.String(),
	})
	return nil
}

// GetCatalog returns the cached book listing, or (nil, false) on a miss.
func GetCatalog(ctx context.Context) ([]byte, bool) {
	if client == nil {
		return nil, false
	}

	payload, err := client.Get(ctx, catalogKey).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		logger.Error("Failed to read cached catalog listing", err)
		return nil, false
	}
	return payload, true
}

// InvalidateCatalog drops the cached listing after a catalog write.
func InvalidateCatalog(ctx context.Context) error {
	if client == nil {
		return nil
	}

	if err := client.Del(ctx, catalogKey).Err(); err != nil {
		logger.Error("Failed to invalidate catalog cache", err)
		return err
	}
	return nil
}
