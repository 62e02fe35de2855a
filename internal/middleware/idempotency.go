package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const idempotencyLockTTL = 30 * time.Second

// Idempotency dedupes POST retries that carry an Idempotency-Key header.
// A cached response is replayed as-is; a request still in flight answers 409.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")
		if idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		actorID := c.GetString("hrms_id")
		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), actorID, idempKey)
		lockKey := cacheKey + ":lock"

		val, err := rdb.Get(c.Request.Context(), cacheKey).Result()
		if err == nil {
			var cachedRes any
			json.Unmarshal([]byte(val), &cachedRes)
			c.AbortWithStatusJSON(http.StatusOK, gin.H{"ok": true, "data": cachedRes})
			return
		}

		// Lock expires on its own so a crashed worker cannot wedge the key.
		isNew, _ := rdb.SetNX(c.Request.Context(), lockKey, "locked", idempotencyLockTTL).Result()
		if !isNew {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"code":    "PROCESSING",
				"message": "A request with this idempotency key is still being processed.",
			})
			return
		}

		c.Set("idempotency_cache_key", cacheKey)
		c.Set("idempotency_lock_key", lockKey)

		c.Next()
	}
}

// ReleaseIdempotencyLock frees the in-flight lock without caching a
// result, so a failed request can be retried with the same key right
// away instead of waiting out the lock TTL.
func ReleaseIdempotencyLock(c *gin.Context, rdb *redis.Client) {
	lockKey := c.GetString("idempotency_lock_key")
	if lockKey == "" {
		return
	}
	rdb.Del(c.Request.Context(), lockKey)
}

// StoreIdempotentResult caches a successful response body for later replay
// and releases the in-flight lock. Handlers call this after committing.
func StoreIdempotentResult(c *gin.Context, rdb *redis.Client, result any, ttl time.Duration) {
	cacheKey := c.GetString("idempotency_cache_key")
	lockKey := c.GetString("idempotency_lock_key")
	if cacheKey == "" {
		return
	}

	if payload, err := json.Marshal(result); err == nil {
		rdb.Set(c.Request.Context(), cacheKey, payload, ttl)
	}
	if lockKey != "" {
		rdb.Del(c.Request.Context(), lockKey)
	}
}
