package category

import (
	"go-calypso/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	visits := r.Group("/visits")
	visits.Use(middleware.AuthMiddleware())
	{
		visits.POST("/category-suggestion", middleware.RateLimitByUser(2, 5), handler.Suggest)
	}
}
