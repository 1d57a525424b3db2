package schedule

import (
	"opsdb/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, logger *zap.Logger) {
	schedules := r.Group("/schedules")
	schedules.Use(middleware.ContextLogger(logger))
	{
		schedules.GET("", middleware.RateLimitByIP(3, 10), handler.GetAll)
		schedules.GET("/:id", middleware.RateLimitByIP(3, 10), handler.GetById)
		schedules.POST("", middleware.RateLimitByIP(1, 5), handler.Create)
		schedules.PUT("/:id", middleware.RateLimitByIP(1, 5), handler.Update)
		schedules.DELETE("/:id", middleware.RateLimitByIP(0.5, 2), handler.Delete)
	}
}
