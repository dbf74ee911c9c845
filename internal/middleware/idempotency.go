package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go-calypso/internal/shared/apperror"
	"go-calypso/internal/shared/contextutil"
	"go-calypso/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	HeaderIdempotencyKey = "Idempotency-Key"
	HeaderReplayed       = "Idempotent-Replayed"

	idempotencyLockTTL = 30 * time.Second
)

type cachedResponse struct {
	Status int             `json:"status"`
	Body   json.RawMessage `json:"body"`
}

type bodyRecorder struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the stored response of a POST carrying an
// Idempotency-Key header that was already answered, and rejects a concurrent
// duplicate with 409. Requests without the header, or with a nil client,
// pass straight through. Only responses below 500 are stored.
func Idempotency(rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader(HeaderIdempotencyKey)
		if rdb == nil || idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		log := contextutil.GetLogger(ctx, zap.L()).Named("middleware.idempotency")

		scope := c.GetString(KeyUserID)
		if scope == "" {
			scope = c.ClientIP()
		}
		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), scope, idempKey)
		lockKey := cacheKey + ":lock"

		if val, err := rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			var cached cachedResponse
			if json.Unmarshal(val, &cached) == nil {
				c.Header(HeaderReplayed, "true")
				c.Data(cached.Status, "application/json; charset=utf-8", cached.Body)
				c.Abort()
				return
			}
		} else if err != redis.Nil {
			// redis trouble must not block the request
			log.Warn("idempotency lookup failed", zap.Error(err))
			c.Next()
			return
		}

		acquired, err := rdb.SetNX(ctx, lockKey, "locked", idempotencyLockTTL).Result()
		if err != nil {
			log.Warn("idempotency lock failed", zap.Error(err))
			c.Next()
			return
		}
		if !acquired {
			response.Error(c, http.StatusConflict, apperror.CodeConflict, "A request with this Idempotency-Key is already being processed", nil)
			c.Abort()
			return
		}

		rec := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = rec

		c.Next()

		if status := rec.Status(); status < http.StatusInternalServerError {
			payload, _ := json.Marshal(cachedResponse{Status: status, Body: rec.buf.Bytes()})
			if err := rdb.Set(ctx, cacheKey, payload, ttl).Err(); err != nil {
				log.Warn("idempotency store failed", zap.Error(err))
			}
		}
		if err := rdb.Del(ctx, lockKey).Err(); err != nil {
			log.Warn("idempotency unlock failed", zap.Error(err))
		}
	}
}
