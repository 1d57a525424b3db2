package attendance

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	withTxFn                func(tx *sql.Tx) Repository
	createFn                func(ctx context.Context, att *Attendance) error
	findByEmployeeAndDateFn func(ctx context.Context, employeeID int64, date time.Time) (*Attendance, error)
	findAllByDateFn         func(ctx context.Context, date time.Time) ([]Attendance, error)
	findAllByEmployeeFn     func(ctx context.Context, employeeID int64, from, to *time.Time) ([]Attendance, error)
	updateFn                func(ctx context.Context, att *Attendance) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository                    { return f.withTxFn(tx) }
func (f *fakeRepo) Create(ctx context.Context, a *Attendance) error { return f.createFn(ctx, a) }
func (f *fakeRepo) FindByEmployeeAndDate(ctx context.Context, employeeID int64, date time.Time) (*Attendance, error) {
	return f.findByEmployeeAndDateFn(ctx, employeeID, date)
}
func (f *fakeRepo) FindAllByDate(ctx context.Context, date time.Time) ([]Attendance, error) {
	return f.findAllByDateFn(ctx, date)
}
func (f *fakeRepo) FindAllByEmployee(ctx context.Context, employeeID int64, from, to *time.Time) ([]Attendance, error) {
	return f.findAllByEmployeeFn(ctx, employeeID, from, to)
}
func (f *fakeRepo) Update(ctx context.Context, a *Attendance) error { return f.updateFn(ctx, a) }

func TestService_Mark_StatusMapping(t *testing.T) {
	cases := []struct {
		status string
		want   *string
	}{
		{"present", nil},
		{"late", strPtr(ExceptionLate)},
		{"absent", strPtr(ExceptionAbsent)},
		{"early_leave", strPtr(ExceptionEarlyLeave)},
		{"overtime", strPtr(ExceptionOvertime)},
		{"cover_up", strPtr(ExceptionCoverUp)},
		{"on_leave", strPtr(ExceptionLeave)},
	}

	for _, tc := range cases {
		t.Run(tc.status, func(t *testing.T) {
			db, mock, _ := sqlmock.New()
			defer db.Close()

			var saved Attendance
			repo := &fakeRepo{}
			repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
			repo.findByEmployeeAndDateFn = func(ctx context.Context, employeeID int64, date time.Time) (*Attendance, error) {
				return nil, gorm.ErrRecordNotFound
			}
			repo.createFn = func(ctx context.Context, att *Attendance) error {
				saved = *att
				return nil
			}

			svc := NewService(db, repo)

			mock.ExpectBegin()
			mock.ExpectCommit()

			_, err := svc.Mark(context.Background(), MarkRequest{
				EmployeeID: 70101,
				Date:       "2024-02-10",
				Status:     tc.status,
			})

			assert.NoError(t, err)
			if tc.want == nil {
				assert.Nil(t, saved.ExceptionType)
			} else {
				assert.NotNil(t, saved.ExceptionType)
				assert.Equal(t, *tc.want, *saved.ExceptionType)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestService_Mark_OverwritesExistingDay(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	date := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	existing := Attendance{ID: 9, EmployeeID: 70101, Date: date, Notes: "first mark"}

	var updated Attendance
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByEmployeeAndDateFn = func(ctx context.Context, employeeID int64, d time.Time) (*Attendance, error) {
		return &existing, nil
	}
	repo.updateFn = func(ctx context.Context, att *Attendance) error {
		updated = *att
		return nil
	}

	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.Mark(context.Background(), MarkRequest{
		EmployeeID:  70101,
		Date:        "2024-02-10",
		Status:      "late",
		LateMinutes: 25,
		Notes:       "traffic",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(9), resp.ID)
	assert.Equal(t, 25, updated.LateMinutes)
	assert.Equal(t, "traffic", updated.Notes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_DailyReport_Summary(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	date := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	repo := &fakeRepo{}
	repo.findAllByDateFn = func(ctx context.Context, d time.Time) ([]Attendance, error) {
		return []Attendance{
			{EmployeeID: 1, Date: date},
			{EmployeeID: 2, Date: date, ExceptionType: strPtr(ExceptionLate)},
			{EmployeeID: 3, Date: date, ExceptionType: strPtr(ExceptionLate)},
			{EmployeeID: 4, Date: date, ExceptionType: strPtr(ExceptionAbsent)},
		}, nil
	}

	svc := NewService(db, repo)

	report, err := svc.DailyReport(context.Background(), "2024-02-10")
	assert.NoError(t, err)
	assert.Equal(t, 4, report.Total)
	assert.Equal(t, 1, report.Summary["Present"])
	assert.Equal(t, 2, report.Summary[ExceptionLate])
	assert.Equal(t, 1, report.Summary[ExceptionAbsent])
}

func strPtr(s string) *string { return &s }
