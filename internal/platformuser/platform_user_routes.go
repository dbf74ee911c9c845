package platformuser

import (
	"go-calypso/internal/middleware"
	"go-calypso/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	users := r.Group("/platform-users")
	users.Use(middleware.AuthMiddleware())
	{
		users.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourcePlatformUser, rbac.ActionRead),
			handler.GetAll,
		)

		users.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourcePlatformUser, rbac.ActionRead),
			handler.GetById,
		)

		users.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, rbac.ResourcePlatformUser, rbac.ActionCreate),
			handler.Create,
		)

		users.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, rbac.ResourcePlatformUser, rbac.ActionUpdate),
			handler.Update,
		)

		users.DELETE("/:id",
			middleware.RateLimitByUser(0.2, 2),
			middleware.RBACAuthorize(rbacService, rbac.ResourcePlatformUser, rbac.ActionDelete),
			handler.Delete,
		)

		users.PUT("/:id/password",
			middleware.RateLimitByUser(0.2, 2),
			handler.ChangePassword,
		)
	}
}
