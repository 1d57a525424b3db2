package upload

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"opsdb/internal/attendance"
	"opsdb/internal/employee"
	"opsdb/internal/events"
	"opsdb/internal/messaging/kafka"
	"opsdb/internal/reward"
	"opsdb/internal/schedule"
	"opsdb/internal/shared/contextutil"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) EmployeeExists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&employee.Employee{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (s *gormStore) Directory(ctx context.Context) ([]employee.DirectoryEntry, error) {
	var entries []employee.DirectoryEntry
	err := s.db.WithContext(ctx).
		Model(&employee.Employee{}).
		Select("id, first_name, last_name").
		Scan(&entries).Error
	return entries, err
}

func (s *gormStore) ScheduleExists(ctx context.Context, employeeID int64, startDate time.Time) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&schedule.Schedule{}).
		Where("employee_id = ? AND start_date = ?", employeeID, startDate).
		Count(&count).Error
	return count > 0, err
}

func (s *gormStore) AttendanceExists(ctx context.Context, employeeID int64, date time.Time) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&attendance.Attendance{}).
		Where("employee_id = ? AND date = ?", employeeID, date).
		Count(&count).Error
	return count > 0, err
}

func (s *gormStore) Reason(ctx context.Context, id int64) (int, bool, bool, error) {
	var reasons []reward.RewardReason
	err := s.db.WithContext(ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&reasons).Error
	if err != nil {
		return 0, false, false, err
	}
	if len(reasons) == 0 {
		return 0, false, false, nil
	}
	return reasons[0].Points, reasons[0].IsActive, true, nil
}

// Flush persists the staged batch in a single transaction. Reward
// awards also bump the owning employee's running balance here so the
// ledger and the balance move together.
func (s *gormStore) Flush(ctx context.Context, batch *Batch) error {
	if batch.empty() {
		return nil
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(batch.Employees) > 0 {
			if err := tx.Create(&batch.Employees).Error; err != nil {
				return err
			}
			// Imported employees announce themselves the same way an
			// API create does, through the outbox.
			rid := contextutil.GetRequestID(ctx)
			now := time.Now().UTC()
			for _, empl := range batch.Employees {
				payload, err := json.Marshal(events.EmployeeCreatedEvent{
					EventType:  "employee_created",
					RequestID:  rid,
					EmployeeID: empl.ID,
					Source:     "upload",
					OccurredAt: now,
				})
				if err != nil {
					return err
				}
				err = tx.Exec(`
					INSERT INTO outbox_events (
						id, request_id, aggregate_type, aggregate_id, event_type, topic, payload, status
					) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
				`, uuid.NewString(), rid, "employee", strconv.FormatInt(empl.ID, 10),
					"employee_created", events.EmployeeCreatedTopic, payload,
					kafka.OutboxStatusPending).Error
				if err != nil {
					return err
				}
			}
		}
		if len(batch.Reviews) > 0 {
			if err := tx.Create(&batch.Reviews).Error; err != nil {
				return err
			}
		}
		if len(batch.Schedules) > 0 {
			if err := tx.Create(&batch.Schedules).Error; err != nil {
				return err
			}
		}
		if len(batch.Attendances) > 0 {
			if err := tx.Create(&batch.Attendances).Error; err != nil {
				return err
			}
		}
		if len(batch.Exceptions) > 0 {
			if err := tx.Create(&batch.Exceptions).Error; err != nil {
				return err
			}
		}
		if len(batch.Rewards) > 0 {
			if err := tx.Create(&batch.Rewards).Error; err != nil {
				return err
			}
			for _, award := range batch.Rewards {
				err := tx.Table("employees").
					Where("id = ?", award.EmployeeID).
					Update("point_balance", gorm.Expr("point_balance + ?", award.Points)).Error
				if err != nil {
					return err
				}
			}
		}
		return nil
	})
}
