package archive

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Config sets how long live rows stay queryable before they move to
// the history tables.
type Config struct {
	ScheduleRetentionDays   int
	AttendanceRetentionDays int
}

func DefaultConfig() Config {
	return Config{
		ScheduleRetentionDays:   60,
		AttendanceRetentionDays: 30,
	}
}

// Service moves expired schedule and attendance rows into their
// history tables. Each entity is archived copy-then-delete inside one
// transaction, so a failure leaves both tables untouched.
type Service interface {
	ArchiveSchedules(ctx context.Context) (int64, error)
	ArchiveAttendance(ctx context.Context) (int64, error)
	Run(ctx context.Context) error
}

type service struct {
	db     *sql.DB
	cfg    Config
	logger *zap.Logger
	now    func() time.Time
}

func NewService(db *sql.DB, cfg Config, logger ...*zap.Logger) Service {
	l := zap.L().Named("archive.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("archive.service")
	}
	return &service{db: db, cfg: cfg, logger: l, now: time.Now}
}

func (s *service) ArchiveSchedules(ctx context.Context) (int64, error) {
	cutoff := s.cutoff(s.cfg.ScheduleRetentionDays)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin archive transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO schedule_history
			(employee_id, start_date, start_time, stop_date, stop_time, work_code, archived_at)
		SELECT employee_id, start_date, start_time, stop_date, stop_time, work_code, NOW()
		FROM schedules
		WHERE start_date < $1
	`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("copy schedules to history: %w", err)
	}
	copied, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM schedules WHERE start_date < $1`, cutoff); err != nil {
		return 0, fmt.Errorf("delete archived schedules: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit schedule archive: %w", err)
	}

	s.logger.Info("archived expired schedules",
		zap.Int64("rows", copied),
		zap.Time("cutoff", cutoff),
	)
	return copied, nil
}

func (s *service) ArchiveAttendance(ctx context.Context) (int64, error) {
	cutoff := s.cutoff(s.cfg.AttendanceRetentionDays)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin archive transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO attendance_history
			(employee_id, date, check_in, check_out, exception_type,
			 late_minutes, overtime_minutes, early_leave, cover_up_for_id, notes, archived_at)
		SELECT employee_id, date, check_in, check_out, exception_type,
			late_minutes, overtime_minutes, early_leave, cover_up_for_id, notes, NOW()
		FROM attendances
		WHERE date < $1
	`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("copy attendance to history: %w", err)
	}
	copied, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM attendances WHERE date < $1`, cutoff); err != nil {
		return 0, fmt.Errorf("delete archived attendance: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit attendance archive: %w", err)
	}

	s.logger.Info("archived expired attendance",
		zap.Int64("rows", copied),
		zap.Time("cutoff", cutoff),
	)
	return copied, nil
}

// Run archives both entities. Attendance expires sooner than
// schedules, so it goes first; a schedule failure then still leaves
// attendance trimmed.
func (s *service) Run(ctx context.Context) error {
	if _, err := s.ArchiveAttendance(ctx); err != nil {
		return err
	}
	if _, err := s.ArchiveSchedules(ctx); err != nil {
		return err
	}
	return nil
}

func (s *service) cutoff(retentionDays int) time.Time {
	now := s.now().UTC()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -retentionDays)
}
