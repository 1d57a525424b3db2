package adminoption

import (
	"opsdb/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, logger *zap.Logger) {
	options := r.Group("/admin-options")
	options.Use(middleware.ContextLogger(logger))
	{
		options.GET("/:category", middleware.RateLimitByIP(5, 20), handler.GetByCategory)
		options.POST("", middleware.RateLimitByIP(0.5, 2), handler.Create)
		options.PUT("/:id/deactivate", middleware.RateLimitByIP(0.5, 2), handler.Deactivate)
		options.DELETE("/:id", middleware.RateLimitByIP(0.5, 2), handler.Delete)
	}
}
