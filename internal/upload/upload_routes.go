package upload

import (
	"opsdb/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, logger *zap.Logger) {
	uploads := r.Group("/uploads")
	uploads.Use(middleware.ContextLogger(logger))
	{
		// Spreadsheet ingestion is heavy; keep the limits tight.
		uploads.POST("/employees",
			middleware.RateLimitByIP(0.2, 2),
			handler.Employees,
		)

		uploads.POST("/schedules",
			middleware.RateLimitByIP(0.2, 2),
			handler.Schedules,
		)

		uploads.POST("/attendance",
			middleware.RateLimitByIP(0.2, 2),
			handler.Attendance,
		)

		uploads.POST("/exceptions",
			middleware.RateLimitByIP(0.2, 2),
			handler.Exceptions,
		)

		uploads.POST("/rewards",
			middleware.RateLimitByIP(0.2, 2),
			handler.Rewards,
		)
	}
}
