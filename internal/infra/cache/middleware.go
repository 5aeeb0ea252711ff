package cache

import (
	"bytes"
	"crypto/sha1"
	"fmt"
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "respcache"
	genKey    = keyPrefix + ":gen"
)

// captureWriter captures the response body while forwarding to the client.
type captureWriter struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	cw.buf.Write(b)
	return cw.ResponseWriter.Write(b)
}

// cacheKey folds the current generation into the key, so bumping the
// generation orphans every previously stored response at once. Orphaned
// entries age out through their TTL.
func cacheKey(gen, path, query string) string {
	sum := sha1.Sum([]byte(gen + "|" + path + "?" + query))
	return fmt.Sprintf("%s:%x", keyPrefix, sum[:])
}

// ResponseCache serves repeated GETs from Redis for the configured TTL.
// Only 200 responses are stored. A nil client disables caching.
func ResponseCache(rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	if rdb == nil {
		return func(c *gin.Context) { c.Next() }
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}
		gen, _ := rdb.Get(c.Request.Context(), genKey).Result()
		key := cacheKey(gen, c.Request.URL.Path, c.Request.URL.RawQuery)
		if body, err := rdb.Get(c.Request.Context(), key).Bytes(); err == nil {
			c.Header("X-Cache", "HIT")
			c.Data(http.StatusOK, "application/json; charset=utf-8", body)
			c.Abort()
			return
		}

		cw := &captureWriter{ResponseWriter: c.Writer}
		c.Writer = cw
		c.Header("X-Cache", "MISS")
		c.Next()

		if cw.Status() == http.StatusOK {
			_ = rdb.SetEx(c.Request.Context(), key, cw.buf.Bytes(), ttl).Err()
		}
	}
}

// Invalidate bumps the cache generation after a successful write, so
// responses cached before the write can no longer be served as current.
// A nil client is a no-op.
func Invalidate(rdb *redis.Client) gin.HandlerFunc {
	if rdb == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		c.Next()
		if status := c.Writer.Status(); status >= 200 && status < 300 {
			_ = rdb.Incr(c.Request.Context(), genKey).Err()
		}
	}
}
