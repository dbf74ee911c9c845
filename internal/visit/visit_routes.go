package visit

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
	r.POST("/public/visits/self-registration",
		middleware.RateLimitByIP(0.2, 3),
		middleware.Idempotency(rdb, 24*time.Hour),
		handler.SelfRegister,
	)

	visits := r.Group("/visits")
	visits.Use(middleware.AuthMiddleware())
	{
		visits.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceVisit, rbac.ActionRead),
			handler.GetAll,
		)

		visits.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceVisit, rbac.ActionRead),
			handler.GetById,
		)

		visits.POST("",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, rbac.ResourceVisit, rbac.ActionCreate),
			middleware.Idempotency(rdb, 24*time.Hour),
			handler.Register,
		)

		visits.PUT("/:id/approve",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, rbac.ResourceVisit, rbac.ActionApprove),
			middleware.RequireAutoregisterPermission(),
			handler.Approve,
		)

		visits.PUT("/:id/exit",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, rbac.ResourceVisit, rbac.ActionExit),
			handler.MarkExit,
		)
	}
}
