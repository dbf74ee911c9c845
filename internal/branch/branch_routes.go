package branch

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
	branches := r.Group("/branches")
	branches.Use(middleware.AuthMiddleware())
	{
		branches.GET("", middleware.RBACAuthorize(rbacService, rbac.ResourceBranch, rbac.ActionRead), h.GetAll)
		branches.POST("", middleware.RBACAuthorize(rbacService, rbac.ResourceBranch, rbac.ActionCreate), h.Create)
		branches.GET("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceBranch, rbac.ActionRead), h.GetById)
		branches.PUT("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceBranch, rbac.ActionUpdate), h.Update)
		branches.DELETE("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceBranch, rbac.ActionDelete), h.Delete)
	}
}
