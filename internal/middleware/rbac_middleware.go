package middleware

import (
	"net/http"

	"go-calypso/internal/domain"
	"go-calypso/internal/shared/apperror"
	"go-calypso/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// RBACService is satisfied by rbac.Service.
type RBACService interface {
	Enforce(req domain.EnforceRequest) (bool, error)
}

func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(KeyRole)
		if role == "" {
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Missing auth context", nil)
			c.Abort()
			return
		}

		allowed, err := service.Enforce(domain.EnforceRequest{
			Role:     role,
			Resource: resource,
			Action:   action,
		})
		if err != nil {
			response.Error(c, http.StatusInternalServerError, apperror.CodeInternalError, apperror.ErrInternal.Message, nil)
			c.Abort()
			return
		}

		if !allowed {
			response.Error(c, http.StatusForbidden, apperror.CodeForbidden, apperror.ErrForbidden.Message,
				gin.H{"required": resource + ":" + action})
			c.Abort()
			return
		}
		c.Next()
	}
}
