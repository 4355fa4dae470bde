package utils

import (
	"context"
	"log"
	"time"

	"salonhub/config"

	"github.com/go-redis/redis/v8"
)

// CacheClient is the generic Redis cache client.
var CacheClient *redis.Client

// AuthCachePrefix namespaces verified token-hash entries in the cache.
const AuthCachePrefix = "auth:"

// InitRedis initializes the generic Redis cache client.
func InitRedis() {
	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := CacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Cache): %v", err)
	}
}

// GetCacheClient returns the generic cache client, or nil when Redis was
// never initialized. Callers treat nil as a permanent cache miss.
func GetCacheClient() *redis.Client {
	return CacheClient
}

// DropAuthCacheEntry removes a verified token hash from the auth cache, so a
// revoked token stops working immediately rather than at TTL expiry.
func DropAuthCacheEntry(ctx context.Context, role, tokenHash string) {
	if CacheClient == nil || tokenHash == "" {
		return
	}
	if err := CacheClient.Del(ctx, AuthCachePrefix+role+":"+tokenHash).Err(); err != nil {
		log.Printf("WARNING: auth cache delete failed: %v", err)
	}
}
