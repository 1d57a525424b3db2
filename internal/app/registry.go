package app

import (
	"database/sql"
	"os"

	"opsdb/internal/adminoption"
	"opsdb/internal/attendance"
	"opsdb/internal/employee"
	"opsdb/internal/exception"
	"opsdb/internal/messaging/kafka"
	"opsdb/internal/review"
	"opsdb/internal/reward"
	"opsdb/internal/schedule"
	"opsdb/internal/upload"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	adminOptionRepo := adminoption.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	exceptionRepo := exception.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	reviewRepo := review.NewRepository(gormDB)
	rewardRepo := reward.NewRepository(gormDB)
	scheduleRepo := schedule.NewRepository(gormDB)
	uploadStore := upload.NewStore(gormDB)

	emailDomain := os.Getenv("COMPANY_EMAIL_DOMAIN")
	if emailDomain == "" {
		emailDomain = "7managedservices.com"
	}
	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}

	// --- Services ---
	adminOptionService := adminoption.NewService(db, adminOptionRepo)
	attendanceService := attendance.NewService(db, attendanceRepo)
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, outboxRepo, rdb)
	exceptionService := exception.NewService(db, exceptionRepo, scheduleRepo, attendanceRepo)
	reviewService := review.NewServiceWithOutbox(db, reviewRepo, employeeRepo, outboxRepo, emailDomain)
	rewardService := reward.NewService(db, rewardRepo)
	scheduleService := schedule.NewService(db, scheduleRepo)
	uploadService := upload.NewService(uploadStore)

	// --- Handlers ---
	adminOptionHandler := adminoption.NewHandler(adminOptionService)
	attendanceHandler := attendance.NewHandler(attendanceService)
	employeeHandler := employee.NewHandler(employeeService)
	exceptionHandler := exception.NewHandler(exceptionService)
	reviewHandler := review.NewHandler(reviewService)
	rewardHandler := reward.NewHandler(rewardService)
	scheduleHandler := schedule.NewHandler(scheduleService)
	uploadHandler := upload.NewHandler(uploadService, uploadDir)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		adminoption.RegisterRoutes(api, adminOptionHandler, logger)
		attendance.RegisterRoutes(api, attendanceHandler, logger)
		employee.RegisterRoutes(api, employeeHandler, logger)
		exception.RegisterRoutes(api, exceptionHandler, logger)
		review.RegisterRoutes(api, reviewHandler, logger)
		reward.RegisterRoutes(api, rewardHandler, logger)
		schedule.RegisterRoutes(api, scheduleHandler, logger)
		upload.RegisterRoutes(api, uploadHandler, logger)
	}

	return nil
}
