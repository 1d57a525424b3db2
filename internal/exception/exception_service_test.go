package exception

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"opsdb/internal/attendance"
	"opsdb/internal/schedule"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

type fakeRepo struct {
	record *ExceptionRecord
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }
func (f *fakeRepo) Create(ctx context.Context, exc *ExceptionRecord) error {
	exc.ID = 1
	f.record = exc
	return nil
}
func (f *fakeRepo) FindAll(ctx context.Context, status string) ([]ExceptionRecord, error) {
	if f.record == nil {
		return nil, nil
	}
	return []ExceptionRecord{*f.record}, nil
}
func (f *fakeRepo) FindByID(ctx context.Context, id int64) (*ExceptionRecord, error) {
	return f.record, nil
}
func (f *fakeRepo) Update(ctx context.Context, exc *ExceptionRecord) error {
	f.record = exc
	return nil
}
func (f *fakeRepo) Delete(ctx context.Context, id int64) error {
	f.record = nil
	return nil
}

type fakeScheduleRepo struct {
	schedule.Repository
	created []schedule.Schedule
}

func (f *fakeScheduleRepo) WithTx(tx *sql.Tx) schedule.Repository { return f }
func (f *fakeScheduleRepo) Create(ctx context.Context, sched *schedule.Schedule) error {
	f.created = append(f.created, *sched)
	return nil
}

type fakeAttendanceRepo struct {
	attendance.Repository
	created []attendance.Attendance
}

func (f *fakeAttendanceRepo) WithTx(tx *sql.Tx) attendance.Repository { return f }
func (f *fakeAttendanceRepo) Create(ctx context.Context, att *attendance.Attendance) error {
	f.created = append(f.created, *att)
	return nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestService_Process_VacationCreatesOffSchedules(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{record: &ExceptionRecord{
		ID:         1,
		EmployeeID: 70101,
		Type:       TypeVacation,
		StartDate:  day(2024, 3, 4),
		EndDate:    day(2024, 3, 6),
		Status:     StatusPending,
	}}
	schedRepo := &fakeScheduleRepo{}
	attRepo := &fakeAttendanceRepo{}

	svc := NewService(db, repo, schedRepo, attRepo)

	mock.ExpectBegin()
	mock.ExpectCommit()

	result, err := svc.Process(context.Background(), 1, ProcessExceptionRequest{ProcessorID: "admin@ops"})
	assert.NoError(t, err)
	assert.Equal(t, 3, result.SchedulesCreated)
	assert.Equal(t, 0, result.AttendancesCreated)
	assert.Equal(t, StatusCompleted, repo.record.Status)
	if assert.NotNil(t, repo.record.ProcessedBy) {
		assert.Equal(t, "admin@ops", *repo.record.ProcessedBy)
	}
	assert.NotNil(t, repo.record.ProcessedAt)
	for _, sc := range schedRepo.created {
		assert.Nil(t, sc.StartTime)
		assert.Nil(t, sc.StopTime)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Process_TrainingUsesDefaultHours(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{record: &ExceptionRecord{
		ID:         2,
		EmployeeID: 70102,
		Type:       TypeNesting,
		StartDate:  day(2024, 3, 4),
		EndDate:    day(2024, 3, 4),
		Status:     StatusPending,
	}}
	schedRepo := &fakeScheduleRepo{}
	attRepo := &fakeAttendanceRepo{}

	svc := NewService(db, repo, schedRepo, attRepo)

	mock.ExpectBegin()
	mock.ExpectCommit()

	result, err := svc.Process(context.Background(), 2, ProcessExceptionRequest{ProcessorID: "admin@ops"})
	assert.NoError(t, err)
	assert.Equal(t, 1, result.SchedulesCreated)
	assert.Equal(t, "09:00", *schedRepo.created[0].StartTime)
	assert.Equal(t, "17:00", *schedRepo.created[0].StopTime)
	if assert.NotNil(t, schedRepo.created[0].WorkCode) {
		assert.Equal(t, TypeNesting, *schedRepo.created[0].WorkCode)
	}
}

func TestService_Process_TrainingKeepsExplicitWorkCode(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	code := "TRN"
	repo := &fakeRepo{record: &ExceptionRecord{
		ID:         5,
		EmployeeID: 70102,
		Type:       TypeTraining,
		StartDate:  day(2024, 3, 4),
		EndDate:    day(2024, 3, 4),
		WorkCode:   &code,
		Status:     StatusPending,
	}}
	schedRepo := &fakeScheduleRepo{}

	svc := NewService(db, repo, schedRepo, &fakeAttendanceRepo{})

	mock.ExpectBegin()
	mock.ExpectCommit()

	_, err := svc.Process(context.Background(), 5, ProcessExceptionRequest{ProcessorID: "admin@ops"})
	assert.NoError(t, err)
	assert.Equal(t, "TRN", *schedRepo.created[0].WorkCode)
}

func TestService_Process_OvertimeCreatesAttendance(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{record: &ExceptionRecord{
		ID:         3,
		EmployeeID: 70103,
		Type:       TypeOvertime,
		StartDate:  day(2024, 3, 9),
		EndDate:    day(2024, 3, 10),
		Status:     StatusPending,
	}}
	schedRepo := &fakeScheduleRepo{}
	attRepo := &fakeAttendanceRepo{}

	svc := NewService(db, repo, schedRepo, attRepo)

	mock.ExpectBegin()
	mock.ExpectCommit()

	result, err := svc.Process(context.Background(), 3, ProcessExceptionRequest{ProcessorID: "admin@ops"})
	assert.NoError(t, err)
	assert.Equal(t, 0, result.SchedulesCreated)
	assert.Equal(t, 2, result.AttendancesCreated)
	assert.Equal(t, attendance.ExceptionOvertime, *attRepo.created[0].ExceptionType)
}

func TestService_Process_RejectsAlreadyCompleted(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{record: &ExceptionRecord{
		ID:        4,
		Type:      TypeVacation,
		StartDate: day(2024, 3, 4),
		EndDate:   day(2024, 3, 4),
		Status:    StatusCompleted,
	}}

	svc := NewService(db, repo, &fakeScheduleRepo{}, &fakeAttendanceRepo{})

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.Process(context.Background(), 4, ProcessExceptionRequest{ProcessorID: "admin@ops"})
	assert.ErrorIs(t, err, ErrAlreadyProcessed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
