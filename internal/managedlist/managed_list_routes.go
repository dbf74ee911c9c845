package managedlist

import (
	"go-calypso/internal/middleware"
	"go-calypso/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	rbacService rbac.Service,
) {
	r.GET("/public/lists", middleware.RateLimitByIP(2, 10), h.GetPublic)

	lists := r.Group("/lists")
	lists.Use(middleware.AuthMiddleware())
	{
		lists.GET("", middleware.RBACAuthorize(rbacService, rbac.ResourceList, rbac.ActionRead), h.GetAll)
		lists.POST("", middleware.RBACAuthorize(rbacService, rbac.ResourceList, rbac.ActionCreate), h.Create)
		lists.PUT("/:itemId", middleware.RBACAuthorize(rbacService, rbac.ResourceList, rbac.ActionUpdate), h.Update)
		lists.DELETE("/:itemId", middleware.RBACAuthorize(rbacService, rbac.ResourceList, rbac.ActionDelete), h.Delete)
	}
}
