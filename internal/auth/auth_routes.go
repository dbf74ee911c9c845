package auth

import (
	"go-calypso/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", middleware.RateLimitByIP(0.2, 5), handler.Login)
		auth.POST("/logout", handler.Logout)
		auth.GET("/me", middleware.AuthMiddleware(), handler.Me)
	}
}
