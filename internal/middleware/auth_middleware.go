package middleware

import (
	"errors"
	"net/http"
	"os"
	"strings"
	"sync"

	"go-calypso/internal/domain"
	"go-calypso/internal/shared/apperror"
	"go-calypso/internal/shared/contextutil"
	"go-calypso/internal/shared/response"
	"go-calypso/internal/shared/token"

	"github.com/gin-gonic/gin"
)

const AccessTokenCookie = "access_token"

var (
	secretMu  sync.RWMutex
	jwtSecret string
)

// SetJWTSecret configures the key used to verify access tokens. When unset
// the JWT_SECRET environment variable is used.
func SetJWTSecret(secret string) {
	secretMu.Lock()
	defer secretMu.Unlock()
	jwtSecret = secret
}

func currentSecret() string {
	secretMu.RLock()
	defer secretMu.RUnlock()
	if jwtSecret != "" {
		return jwtSecret
	}
	return os.Getenv("JWT_SECRET")
}

var (
	errTokenNotFound = apperror.New(apperror.CodeUnauthorized, "Token not found", http.StatusUnauthorized)
	errTokenInvalid  = apperror.New("INVALID_TOKEN", "Invalid token", http.StatusUnauthorized)
	errTokenExpired  = apperror.New("TOKEN_EXPIRED", "Token has expired", http.StatusUnauthorized)
	errAutoregister  = apperror.New(apperror.CodeForbidden, "You are not allowed to manage self-registrations", http.StatusForbidden)
)

func abortWith(c *gin.Context, e *apperror.AppError) {
	response.Error(c, e.HTTPStatus, e.Code, e.Message, nil)
	c.Abort()
}

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			raw = ""
		}
		if raw == "" {
			if cookie, err := c.Cookie(AccessTokenCookie); err == nil {
				raw = cookie
			}
		}
		if raw == "" {
			abortWith(c, errTokenNotFound)
			return
		}

		claims, err := token.Parse(currentSecret(), raw)
		if err != nil {
			if errors.Is(err, token.ErrExpired) {
				abortWith(c, errTokenExpired)
				return
			}
			abortWith(c, errTokenInvalid)
			return
		}

		c.Set(KeyUserID, claims.UserID)
		c.Set(KeyEmployeeID, claims.EmployeeID)
		c.Set(KeyRole, claims.Role)
		c.Set(KeyCanManageAutoregister, claims.CanManageAutoregister)

		ctx := contextutil.WithUserID(c.Request.Context(), claims.UserID)
		ctx = contextutil.WithRole(ctx, claims.Role)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func RoleMiddleware(allowedRoles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := domain.Role(c.GetString(KeyRole))
		for _, allowed := range allowedRoles {
			if role == allowed {
				c.Next()
				return
			}
		}
		abortWith(c, apperror.ErrForbidden)
	}
}

// RequireAutoregisterPermission guards approval of self-registered visits.
func RequireAutoregisterPermission() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(KeyCanManageAutoregister) {
			abortWith(c, errAutoregister)
			return
		}
		c.Next()
	}
}
