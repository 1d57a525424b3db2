package attendance

import (
	"opsdb/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, logger *zap.Logger) {
	attendance := r.Group("/attendance")
	attendance.Use(middleware.ContextLogger(logger))
	{
		attendance.POST("/mark", middleware.RateLimitByIP(2, 10), handler.Mark)
		attendance.GET("/report", middleware.RateLimitByIP(3, 10), handler.DailyReport)
		attendance.GET("/employee/:employee_id", middleware.RateLimitByIP(3, 10), handler.GetByEmployee)
	}
}
