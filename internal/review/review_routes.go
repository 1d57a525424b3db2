package review

import (
	"opsdb/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, logger *zap.Logger) {
	reviews := r.Group("/employee-reviews")
	reviews.Use(middleware.ContextLogger(logger))
	{
		reviews.GET("", middleware.RateLimitByIP(3, 10), handler.GetAll)
		reviews.GET("/:id", middleware.RateLimitByIP(3, 10), handler.GetById)
		reviews.POST("/:id/approve", middleware.RateLimitByIP(0.5, 2), handler.Approve)
		reviews.POST("/:id/reject", middleware.RateLimitByIP(0.5, 2), handler.Reject)
	}
}
