package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func newIdempotentRouter(t *testing.T, calls *int) (*gin.Engine, redismock.ClientMock) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rdb, mock := redismock.NewClientMock()

	r := gin.New()
	r.POST("/visits", Idempotency(rdb, time.Hour), func(c *gin.Context) {
		*calls++
		c.JSON(http.StatusCreated, gin.H{"ok": true})
	})
	return r, mock
}

func TestIdempotency(t *testing.T) {
	const (
		cacheKey = "idemp:/visits:192.0.2.1:abc"
		lockKey  = cacheKey + ":lock"
	)

	t.Run("first request runs handler and stores response", func(t *testing.T) {
		calls := 0
		r, mock := newIdempotentRouter(t, &calls)

		stored, _ := json.Marshal(cachedResponse{Status: http.StatusCreated, Body: json.RawMessage(`{"ok":true}`)})
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", idempotencyLockTTL).SetVal(true)
		mock.ExpectSet(cacheKey, stored, time.Hour).SetVal("OK")
		mock.ExpectDel(lockKey).SetVal(1)

		req := httptest.NewRequest(http.MethodPost, "/visits", nil)
		req.Header.Set(HeaderIdempotencyKey, "abc")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("replays stored response", func(t *testing.T) {
		calls := 0
		r, mock := newIdempotentRouter(t, &calls)

		stored, _ := json.Marshal(cachedResponse{Status: http.StatusCreated, Body: json.RawMessage(`{"ok":true,"data":{"id":"v1"}}`)})
		mock.ExpectGet(cacheKey).SetVal(string(stored))

		req := httptest.NewRequest(http.MethodPost, "/visits", nil)
		req.Header.Set(HeaderIdempotencyKey, "abc")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "true", w.Header().Get(HeaderReplayed))
		assert.JSONEq(t, `{"ok":true,"data":{"id":"v1"}}`, w.Body.String())
		assert.Zero(t, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("concurrent duplicate gets conflict", func(t *testing.T) {
		calls := 0
		r, mock := newIdempotentRouter(t, &calls)

		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", idempotencyLockTTL).SetVal(false)

		req := httptest.NewRequest(http.MethodPost, "/visits", nil)
		req.Header.Set(HeaderIdempotencyKey, "abc")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Zero(t, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no header skips redis", func(t *testing.T) {
		calls := 0
		r, mock := newIdempotentRouter(t, &calls)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/visits", nil))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
