package attendance

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
	ErrAttendanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"Attendance record not found",
		http.StatusNotFound,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrUnknownStatus = apperror.New(
		apperror.CodeInvalidInput,
		"Unknown attendance status",
		http.StatusBadRequest,
	)
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	Mark(ctx context.Context, req MarkRequest) (AttendanceResponse, error)
	DailyReport(ctx context.Context, date string) (DailyReportResponse, error)
	GetByEmployee(ctx context.Context, employeeID int64, from, to string) ([]AttendanceResponse, error)
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

// exceptionForStatus maps a tracker form status to the stored
// exception tag. Present has no tag.
func exceptionForStatus(status string) (*string, bool) {
	var tag string
	switch status {
	case "present":
		return nil, true
	case "late":
		tag = ExceptionLate
	case "absent":
		tag = ExceptionAbsent
	case "early_leave":
		tag = ExceptionEarlyLeave
	case "overtime":
		tag = ExceptionOvertime
	case "cover_up":
		tag = ExceptionCoverUp
	case "on_leave":
		tag = ExceptionLeave
	default:
		return nil, false
	}
	return &tag, true
}

// Mark upserts the attendance row for (employee, date). Re-marking the
// same day overwrites the previous mark instead of erroring.
func (s *service) Mark(ctx context.Context, req MarkRequest) (AttendanceResponse, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return AttendanceResponse{}, ErrInvalidDate
	}

	exceptionType, ok := exceptionForStatus(req.Status)
	if !ok {
		return AttendanceResponse{}, ErrUnknownStatus
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	att, err := qtx.FindByEmployeeAndDate(ctx, req.EmployeeID, date)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return AttendanceResponse{}, err
	}

	isNew := errors.Is(err, gorm.ErrRecordNotFound)
	if isNew {
		att = &Attendance{EmployeeID: req.EmployeeID, Date: date}
	}

	att.CheckIn = req.CheckIn
	att.CheckOut = req.CheckOut
	att.ExceptionType = exceptionType
	att.LateMinutes = req.LateMinutes
	att.OvertimeMinutes = req.OvertimeMinutes
	att.EarlyLeave = req.Status == "early_leave"
	att.CoverUpForID = req.CoverUpForID
	att.Notes = req.Notes

	if isNew {
		err = qtx.Create(ctx, att)
	} else {
		err = qtx.Update(ctx, att)
	}
	if err != nil {
		return AttendanceResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}

	return mapToResponse(*att), nil
}

func (s *service) DailyReport(ctx context.Context, dateStr string) (DailyReportResponse, error) {
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return DailyReportResponse{}, ErrInvalidDate
	}

	atts, err := s.repo.FindAllByDate(ctx, date)
	if err != nil {
		return DailyReportResponse{}, err
	}

	report := DailyReportResponse{
		Date:    dateStr,
		Total:   len(atts),
		Marked:  make([]AttendanceResponse, len(atts)),
		Summary: map[string]int{},
	}
	for i, att := range atts {
		report.Marked[i] = mapToResponse(att)
		key := "Present"
		if att.ExceptionType != nil {
			key = *att.ExceptionType
		}
		report.Summary[key]++
	}
	return report, nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID int64, from, to string) ([]AttendanceResponse, error) {
	fromDate, err := optionalDate(from)
	if err != nil {
		return nil, ErrInvalidDate
	}
	toDate, err := optionalDate(to)
	if err != nil {
		return nil, ErrInvalidDate
	}

	atts, err := s.repo.FindAllByEmployee(ctx, employeeID, fromDate, toDate)
	if err != nil {
		return nil, err
	}

	res := make([]AttendanceResponse, len(atts))
	for i, att := range atts {
		res[i] = mapToResponse(att)
	}
	return res, nil
}

func mapToResponse(att Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:              att.ID,
		EmployeeID:      att.EmployeeID,
		Date:            att.Date.Format("2006-01-02"),
		CheckIn:         att.CheckIn,
		CheckOut:        att.CheckOut,
		ExceptionType:   att.ExceptionType,
		LateMinutes:     att.LateMinutes,
		OvertimeMinutes: att.OvertimeMinutes,
		EarlyLeave:      att.EarlyLeave,
		CoverUpForID:    att.CoverUpForID,
		Notes:           att.Notes,
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
