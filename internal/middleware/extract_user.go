package middleware

import (
	"net/http"

	"go-calypso/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// gin context keys written by AuthMiddleware.
const (
	KeyUserID                = "user_id"
	KeyEmployeeID            = "employee_id"
	KeyRole                  = "role"
	KeyCanManageAutoregister = "can_manage_autoregister"
)

type CurrentUser struct {
	UserID                string
	EmployeeID            string
	Role                  string
	CanManageAutoregister bool
}

// GetCurrentUser reads the authenticated caller; ok is false on public routes.
func GetCurrentUser(c *gin.Context) (CurrentUser, bool) {
	uid := c.GetString(KeyUserID)
	if uid == "" {
		return CurrentUser{}, false
	}
	return CurrentUser{
		UserID:                uid,
		EmployeeID:            c.GetString(KeyEmployeeID),
		Role:                  c.GetString(KeyRole),
		CanManageAutoregister: c.GetBool(KeyCanManageAutoregister),
	}, true
}

func ExtractUserID() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetCurrentUser(c); !ok {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User is not authenticated", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
