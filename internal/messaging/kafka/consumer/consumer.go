package consumer

import (
	"context"
	"encoding/json"
	"errors"

	"opsdb/internal/events"
	"opsdb/internal/reward"
	rewarderrors "opsdb/internal/reward/errors"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeEmployeeLifecycle grants the onboarding welcome points when
// an employee_created event arrives. Events whose employee or reason
// no longer resolves are committed and skipped; transient failures
// leave the message uncommitted for redelivery.
func ConsumeEmployeeLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	rewardService reward.Service,
	onboardingReasonID int64,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.employee_lifecycle")
	log.Info("employee lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("employee lifecycle consumer stopped")
				return
			}
			log.Error("fetch employee lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.EmployeeCreatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode employee_created event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		_, err = rewardService.Award(ctx, reward.AwardRequest{
			EmployeeID: event.EmployeeID,
			ReasonID:   onboardingReasonID,
			Notes:      "Welcome aboard",
		})
		if err != nil {
			if isSkippableAwardError(err) {
				log.Warn("skipping onboarding award for event",
					zap.Int64("employee_id", event.EmployeeID),
					zap.Error(err),
				)
				_ = reader.CommitMessages(ctx, msg)
				continue
			}

			log.Error("create onboarding award failed",
				zap.Int64("employee_id", event.EmployeeID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit employee lifecycle message failed", zap.Error(err))
			continue
		}

		log.Info("onboarding points awarded from employee_created event",
			zap.Int64("employee_id", event.EmployeeID),
		)
	}
}

// isSkippableAwardError marks failures retrying can never fix, such as
// an employee archived between publish and consume.
func isSkippableAwardError(err error) bool {
	return errors.Is(err, rewarderrors.ErrEmployeeNotFound) ||
		errors.Is(err, rewarderrors.ErrReasonNotFound) ||
		errors.Is(err, rewarderrors.ErrReasonInactive)
}
