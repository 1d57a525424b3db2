package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"opsdb/internal/archive"
	"opsdb/internal/messaging/kafka"
	"opsdb/internal/messaging/kafka/producer"
	"opsdb/internal/shared/connection"

	"go.uber.org/zap"
)

// RunWorker drains the outbox into Kafka and runs the retention
// archiver on a daily cadence.
func RunWorker() error {
	logger := zap.L().Named("app.worker")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	kafkaWriter, err := connection.ConnectKafkaWithRetry(kafkaBroker, 5)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(sqlDB)
	archiveService := archive.NewService(sqlDB, archiveConfigFromEnv(), logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go producer.ProcessOutboxEvents(
		ctx,
		outboxRepo,
		kafkaWriter,
		logger,
		3*time.Second,
	)

	go runArchiver(ctx, archiveService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("worker shutting down")
	cancel()

	return nil
}

func runArchiver(ctx context.Context, svc archive.Service, logger *zap.Logger) {
	// Run once at startup, then daily.
	if err := svc.Run(ctx); err != nil {
		logger.Error("retention archive failed", zap.Error(err))
	}

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := svc.Run(ctx); err != nil {
				logger.Error("retention archive failed", zap.Error(err))
			}
		}
	}
}

func archiveConfigFromEnv() archive.Config {
	cfg := archive.DefaultConfig()
	if v := os.Getenv("SCHEDULE_RETENTION_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ScheduleRetentionDays = n
		}
	}
	if v := os.Getenv("ATTENDANCE_RETENTION_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.AttendanceRetentionDays = n
		}
	}
	return cfg
}
