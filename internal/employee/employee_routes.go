package employee

import (
	"time"

	"go-calypso/internal/middleware"
	"go-calypso/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb *redis.Client,
) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceEmployee, rbac.ActionRead),
			handler.GetAll,
		)

		employees.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceEmployee, rbac.ActionRead),
			handler.GetById,
		)

		employees.POST("",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, rbac.ResourceEmployee, rbac.ActionCreate),
			middleware.Idempotency(rdb, 24*time.Hour),
			handler.Create,
		)

		employees.POST("/import",
			middleware.RateLimitByUser(0.1, 2),
			middleware.RBACAuthorize(rbacService, rbac.ResourceEmployee, rbac.ActionImport),
			middleware.Idempotency(rdb, 24*time.Hour),
			handler.Import,
		)

		employees.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, rbac.ResourceEmployee, rbac.ActionUpdate),
			handler.Update,
		)

		employees.DELETE("/:id",
			middleware.RateLimitByUser(0.2, 2),
			middleware.RBACAuthorize(rbacService, rbac.ResourceEmployee, rbac.ActionDelete),
			handler.Delete,
		)
	}
}
