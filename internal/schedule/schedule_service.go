package schedule

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"opsdb/internal/shared/apperror"

	"gorm.io/gorm"
)

var (
	ErrScheduleNotFound = apperror.New(
		apperror.CodeNotFound,
		"Schedule not found",
		http.StatusNotFound,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrDuplicateSchedule = apperror.New(
		apperror.CodeConflict,
		"A schedule already exists for this employee and date",
		http.StatusConflict,
	)
)

//go:generate mockgen -source=schedule_service.go -destination=mock/schedule_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateScheduleRequest) (ScheduleResponse, error)
	GetAll(ctx context.Context, employeeID int64, from, to string) ([]ScheduleResponse, error)
	GetByID(ctx context.Context, id int64) (ScheduleResponse, error)
	Update(ctx context.Context, id int64, req UpdateScheduleRequest) (ScheduleResponse, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateScheduleRequest) (ScheduleResponse, error) {
	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return ScheduleResponse{}, ErrInvalidDate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ScheduleResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.ExistsForEmployeeAndDate(ctx, req.EmployeeID, startDate)
	if err != nil {
		return ScheduleResponse{}, err
	}
	if exists {
		return ScheduleResponse{}, ErrDuplicateSchedule
	}

	sched := &Schedule{
		EmployeeID: req.EmployeeID,
		StartDate:  startDate,
		StartTime:  req.StartTime,
		StopDate:   StopDate(startDate, req.StartTime, req.StopTime),
		StopTime:   req.StopTime,
		WorkCode:   req.WorkCode,
	}

	if err := qtx.Create(ctx, sched); err != nil {
		return ScheduleResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return ScheduleResponse{}, err
	}

	return mapToResponse(*sched), nil
}

func (s *service) GetAll(ctx context.Context, employeeID int64, from, to string) ([]ScheduleResponse, error) {
	fromDate, err := optionalDate(from)
	if err != nil {
		return nil, ErrInvalidDate
	}
	toDate, err := optionalDate(to)
	if err != nil {
		return nil, ErrInvalidDate
	}

	scheds, err := s.repo.FindAll(ctx, employeeID, fromDate, toDate)
	if err != nil {
		return nil, err
	}

	res := make([]ScheduleResponse, len(scheds))
	for i, sc := range scheds {
		res[i] = mapToResponse(sc)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (ScheduleResponse, error) {
	sched, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ScheduleResponse{}, ErrScheduleNotFound
		}
		return ScheduleResponse{}, err
	}
	return mapToResponse(*sched), nil
}

func (s *service) Update(ctx context.Context, id int64, req UpdateScheduleRequest) (ScheduleResponse, error) {
	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return ScheduleResponse{}, ErrInvalidDate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ScheduleResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	sched, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ScheduleResponse{}, ErrScheduleNotFound
		}
		return ScheduleResponse{}, err
	}

	sched.StartDate = startDate
	sched.StartTime = req.StartTime
	sched.StopTime = req.StopTime
	sched.StopDate = StopDate(startDate, req.StartTime, req.StopTime)
	sched.WorkCode = req.WorkCode

	if err := qtx.Update(ctx, sched); err != nil {
		return ScheduleResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return ScheduleResponse{}, err
	}

	return mapToResponse(*sched), nil
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
			return ErrScheduleNotFound
		}
		return err
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}

	return tx.Commit()
}

func mapToResponse(sched Schedule) ScheduleResponse {
	return ScheduleResponse{
		ID:         sched.ID,
		EmployeeID: sched.EmployeeID,
		StartDate:  sched.StartDate.Format("2006-01-02"),
		StartTime:  sched.StartTime,
		StopDate:   sched.StopDate.Format("2006-01-02"),
		StopTime:   sched.StopTime,
		WorkCode:   sched.WorkCode,
		Off:        sched.StartTime == nil && sched.StopTime == nil,
	}
}

func optionalDate(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	d, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
