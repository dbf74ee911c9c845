package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-calypso/internal/domain"
	"go-calypso/internal/shared/token"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func issue(t *testing.T, claims token.Claims, ttl time.Duration) string {
	t.Helper()
	raw, err := token.Issue(testSecret, claims, ttl)
	require.NoError(t, err)
	return raw
}

func protectedRouter(extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	SetJWTSecret(testSecret)

	r := gin.New()
	handlers := append([]gin.HandlerFunc{AuthMiddleware()}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		u, _ := GetCurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"user_id": u.UserID, "role": u.Role})
	})
	r.GET("/me", handlers...)
	return r
}

func TestAuthMiddleware(t *testing.T) {
	claims := token.Claims{UserID: "u1", EmployeeID: "e1", Role: string(domain.RoleStandard)}

	t.Run("bearer token", func(t *testing.T) {
		r := protectedRouter()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+issue(t, claims, time.Hour))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"user_id":"u1","role":"STANDARD"}`, w.Body.String())
	})

	t.Run("cookie token", func(t *testing.T) {
		r := protectedRouter()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: issue(t, claims, time.Hour)})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		r := protectedRouter()
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Token not found")
	})

	t.Run("expired token", func(t *testing.T) {
		r := protectedRouter()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+issue(t, claims, -time.Minute))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "TOKEN_EXPIRED")
	})
}

func TestRequireAutoregisterPermission(t *testing.T) {
	t.Run("flag missing", func(t *testing.T) {
		r := protectedRouter(RequireAutoregisterPermission())
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+issue(t, token.Claims{UserID: "u1", EmployeeID: "e1", Role: "STANDARD"}, time.Hour))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("flag set", func(t *testing.T) {
		r := protectedRouter(RequireAutoregisterPermission())
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+issue(t, token.Claims{UserID: "u1", EmployeeID: "e1", Role: "STANDARD", CanManageAutoregister: true}, time.Hour))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

type stubEnforcer struct{ allow bool }

func (s stubEnforcer) Enforce(req domain.EnforceRequest) (bool, error) { return s.allow, nil }

func TestRBACAuthorize(t *testing.T) {
	claims := token.Claims{UserID: "u1", EmployeeID: "e1", Role: "ADMIN"}

	for _, allow := range []bool{true, false} {
		r := protectedRouter(RBACAuthorize(stubEnforcer{allow: allow}, "employee", "delete"))
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+issue(t, claims, time.Hour))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if allow {
			assert.Equal(t, http.StatusOK, w.Code)
		} else {
			assert.Equal(t, http.StatusForbidden, w.Code)
			assert.Contains(t, w.Body.String(), "employee:delete")
		}
	}
}

func TestRateLimitByIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ping", RateLimitByIP(1, 2), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}
