package exception

import (
	"opsdb/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, logger *zap.Logger) {
	exceptions := r.Group("/exceptions")
	exceptions.Use(middleware.ContextLogger(logger))
	{
		exceptions.GET("", middleware.RateLimitByIP(3, 10), handler.GetAll)
		exceptions.GET("/:id", middleware.RateLimitByIP(3, 10), handler.GetById)
		exceptions.POST("", middleware.RateLimitByIP(1, 5), handler.Create)
		exceptions.POST("/:id/process", middleware.RateLimitByIP(0.5, 2), handler.Process)
		exceptions.DELETE("/:id", middleware.RateLimitByIP(0.5, 2), handler.Delete)
	}
}
