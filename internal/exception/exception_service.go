package exception

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"opsdb/internal/attendance"
	"opsdb/internal/schedule"
	"opsdb/internal/shared/apperror"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrExceptionNotFound = apperror.New(
		apperror.CodeNotFound,
		"Exception record not found",
		http.StatusNotFound,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"End date must not be before start date",
		http.StatusBadRequest,
	)
	ErrAlreadyProcessed = apperror.New(
		apperror.CodeInvalidState,
		"Exception has already been processed",
		http.StatusConflict,
	)
)

// Default working hours for schedules synthesized from training-like
// exceptions.
const (
	defaultShiftStart = "09:00"
	defaultShiftStop  = "17:00"
)

//go:generate mockgen -source=exception_service.go -destination=mock/exception_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateExceptionRequest) (ExceptionResponse, error)
	GetAll(ctx context.Context, status string) ([]ExceptionResponse, error)
	GetByID(ctx context.Context, id int64) (ExceptionResponse, error)
	Process(ctx context.Context, id int64, req ProcessExceptionRequest) (ProcessResultResponse, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	db             *sql.DB
	repo           Repository
	scheduleRepo   schedule.Repository
	attendanceRepo attendance.Repository
	logger         *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	scheduleRepo schedule.Repository,
	attendanceRepo attendance.Repository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("exception.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("exception.service")
	}
	return &service{
		db:             db,
		repo:           repo,
		scheduleRepo:   scheduleRepo,
		attendanceRepo: attendanceRepo,
		logger:         l,
	}
}

func (s *service) Create(ctx context.Context, req CreateExceptionRequest) (ExceptionResponse, error) {
	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return ExceptionResponse{}, ErrInvalidDate
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return ExceptionResponse{}, ErrInvalidDate
	}
	if endDate.Before(startDate) {
		return ExceptionResponse{}, ErrInvalidDateRange
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ExceptionResponse{}, err
	}
	defer tx.Rollback()

	exc := &ExceptionRecord{
		EmployeeID:         req.EmployeeID,
		Type:               req.Type,
		StartDate:          startDate,
		EndDate:            endDate,
		WorkCode:           req.WorkCode,
		SupervisorOverride: req.SupervisorOverride,
		Notes:              req.Notes,
		Status:             StatusPending,
	}

	if err := s.repo.WithTx(tx).Create(ctx, exc); err != nil {
		s.logger.Error("create exception persist failed", zap.Error(err))
		return ExceptionResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return ExceptionResponse{}, err
	}

	s.logger.Info("exception created",
		zap.Int64("exception_id", exc.ID),
		zap.Int64("employee_id", exc.EmployeeID),
		zap.String("type", exc.Type),
	)

	return mapToResponse(*exc), nil
}

func (s *service) GetAll(ctx context.Context, status string) ([]ExceptionResponse, error) {
	excs, err := s.repo.FindAll(ctx, status)
	if err != nil {
		return nil, err
	}

	res := make([]ExceptionResponse, len(excs))
	for i, exc := range excs {
		res[i] = mapToResponse(exc)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (ExceptionResponse, error) {
	exc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ExceptionResponse{}, ErrExceptionNotFound
		}
		return ExceptionResponse{}, err
	}
	return mapToResponse(*exc), nil
}

// Process walks the exception's date span and synthesizes the
// dependent rows its type calls for, then marks the exception
// Completed. The whole span commits in one transaction.
func (s *service) Process(ctx context.Context, id int64, req ProcessExceptionRequest) (ProcessResultResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ProcessResultResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exc, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProcessResultResponse{}, ErrExceptionNotFound
		}
		return ProcessResultResponse{}, err
	}
	if exc.Status != StatusPending {
		return ProcessResultResponse{}, ErrAlreadyProcessed
	}

	schedTx := s.scheduleRepo.WithTx(tx)
	attTx := s.attendanceRepo.WithTx(tx)

	result := ProcessResultResponse{ExceptionID: exc.ID}

	for day := exc.StartDate; !day.After(exc.EndDate); day = day.AddDate(0, 0, 1) {
		switch exc.Type {
		case TypeVacation, TypeSick, TypePersonal, TypeUnplanned:
			// Off schedule: no start/stop times.
			if err := schedTx.Create(ctx, &schedule.Schedule{
				EmployeeID: exc.EmployeeID,
				StartDate:  day,
				StopDate:   day,
				WorkCode:   exc.WorkCode,
			}); err != nil {
				return ProcessResultResponse{}, err
			}
			result.SchedulesCreated++

		case TypeTraining, TypeNesting, TypeNewHireTraining:
			start := defaultShiftStart
			stop := defaultShiftStop
			workCode := exc.WorkCode
			if workCode == nil {
				// Exceptions without an explicit work code stamp the
				// schedule with their own type.
				workCode = &exc.Type
			}
			if err := schedTx.Create(ctx, &schedule.Schedule{
				EmployeeID: exc.EmployeeID,
				StartDate:  day,
				StartTime:  &start,
				StopDate:   day,
				StopTime:   &stop,
				WorkCode:   workCode,
			}); err != nil {
				return ProcessResultResponse{}, err
			}
			result.SchedulesCreated++

		case TypeOvertime, TypeCoverUp:
			tag := attendance.ExceptionOvertime
			if exc.Type == TypeCoverUp {
				tag = attendance.ExceptionCoverUp
			}
			if err := attTx.Create(ctx, &attendance.Attendance{
				EmployeeID:    exc.EmployeeID,
				Date:          day,
				ExceptionType: &tag,
				Notes:         exc.Notes,
			}); err != nil {
				return ProcessResultResponse{}, err
			}
			result.AttendancesCreated++

		default:
			// Unknown types flip to Completed without side effects.
		}
	}

	now := time.Now().UTC()
	exc.Status = StatusCompleted
	exc.ProcessedBy = &req.ProcessorID
	exc.ProcessedAt = &now
	if err := qtx.Update(ctx, exc); err != nil {
		return ProcessResultResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return ProcessResultResponse{}, err
	}

	s.logger.Info("exception processed",
		zap.Int64("exception_id", exc.ID),
		zap.String("type", exc.Type),
		zap.String("processed_by", req.ProcessorID),
		zap.Int("schedules_created", result.SchedulesCreated),
		zap.Int("attendances_created", result.AttendancesCreated),
	)

	return result, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrExceptionNotFound
		}
		return err
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}

	return tx.Commit()
}

func mapToResponse(exc ExceptionRecord) ExceptionResponse {
	resp := ExceptionResponse{
		ID:                 exc.ID,
		EmployeeID:         exc.EmployeeID,
		Type:               exc.Type,
		StartDate:          exc.StartDate.Format("2006-01-02"),
		EndDate:            exc.EndDate.Format("2006-01-02"),
		WorkCode:           exc.WorkCode,
		SupervisorOverride: exc.SupervisorOverride,
		Notes:              exc.Notes,
		Status:             exc.Status,
		ProcessedBy:        exc.ProcessedBy,
	}
	if exc.ProcessedAt != nil {
		at := exc.ProcessedAt.Format(time.RFC3339)
		resp.ProcessedAt = &at
	}
	return resp
}
