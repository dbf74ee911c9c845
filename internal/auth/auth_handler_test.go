package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-calypso/internal/auth"
	autherrors "go-calypso/internal/auth/errors"
	"go-calypso/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthService struct {
	LoginFn func(ctx context.Context, identification, password string) (string, auth.AuthResponse, error)
	GetMeFn func(ctx context.Context, userID string) (auth.AuthResponse, error)
}

func (f *fakeAuthService) Login(ctx context.Context, identification, password string) (string, auth.AuthResponse, error) {
	return f.LoginFn(ctx, identification, password)
}
func (f *fakeAuthService) GetMe(ctx context.Context, userID string) (auth.AuthResponse, error) {
	return f.GetMeFn(ctx, userID)
}
func (f *fakeAuthService) TokenTTL() time.Duration { return 2 * time.Hour }

func findCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, ck := range w.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}

func TestAuthHandler_Login(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success sets the access cookie", func(t *testing.T) {
		svc := &fakeAuthService{
			LoginFn: func(ctx context.Context, identification, password string) (string, auth.AuthResponse, error) {
				assert.Equal(t, "1001", identification)
				return "jwt-token", auth.AuthResponse{ID: "u1", Role: "ADMIN"}, nil
			},
		}
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"identification":"1001","password":"secret-1"}`))
		c.Request.Header.Set("Content-Type", "application/json")

		auth.NewHandler(svc, true).Login(c)

		require.Equal(t, http.StatusOK, w.Code)
		ck := findCookie(w, middleware.AccessTokenCookie)
		require.NotNil(t, ck)
		assert.Equal(t, "jwt-token", ck.Value)
		assert.True(t, ck.HttpOnly)
		assert.True(t, ck.Secure)
		assert.Equal(t, 7200, ck.MaxAge)
		assert.Contains(t, w.Body.String(), `"expiresIn":7200`)
	})

	t.Run("bad credentials", func(t *testing.T) {
		svc := &fakeAuthService{
			LoginFn: func(context.Context, string, string) (string, auth.AuthResponse, error) {
				return "", auth.AuthResponse{}, autherrors.ErrInvalidCredentials
			},
		}
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"identification":"1001","password":"x"}`))
		c.Request.Header.Set("Content-Type", "application/json")

		auth.NewHandler(svc, false).Login(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Nil(t, findCookie(w, middleware.AccessTokenCookie))
	})

	t.Run("validation error", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"identification":"1001"}`))
		c.Request.Header.Set("Content-Type", "application/json")

		auth.NewHandler(&fakeAuthService{}, false).Login(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandler_MeAndLogout(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &fakeAuthService{
		GetMeFn: func(ctx context.Context, userID string) (auth.AuthResponse, error) {
			return auth.AuthResponse{ID: userID, Role: "STANDARD"}, nil
		},
	}
	h := auth.NewHandler(svc, false)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	c.Set(middleware.KeyUserID, "u1")
	h.Me(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"u1"`)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	h.Me(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	h.Logout(c)
	ck := findCookie(w, middleware.AccessTokenCookie)
	require.NotNil(t, ck)
	assert.Equal(t, "", ck.Value)
	assert.True(t, ck.MaxAge < 0)
}
