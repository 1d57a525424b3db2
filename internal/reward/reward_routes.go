package reward

import (
	"opsdb/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, logger *zap.Logger) {
	rewards := r.Group("/rewards")
	rewards.Use(middleware.ContextLogger(logger))
	{
		rewards.GET("/reasons", middleware.RateLimitByIP(3, 10), handler.GetReasons)
		rewards.POST("/reasons", middleware.RateLimitByIP(0.5, 2), handler.CreateReason)
		rewards.PUT("/reasons/:id", middleware.RateLimitByIP(0.5, 2), handler.UpdateReason)
		rewards.POST("/award", middleware.RateLimitByIP(1, 5), handler.Award)
		rewards.POST("/redeem", middleware.RateLimitByIP(0.5, 2), handler.Redeem)
		rewards.GET("/balance/:employee_id", middleware.RateLimitByIP(3, 10), handler.GetBalance)
	}
}
