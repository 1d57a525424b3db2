package review

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"opsdb/internal/employee"
	reviewerrors "opsdb/internal/review/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

type fakeRepo struct {
	record *NewEmployeeReview
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }
func (f *fakeRepo) Create(ctx context.Context, rev *NewEmployeeReview) error {
	f.record = rev
	return nil
}
func (f *fakeRepo) FindAll(ctx context.Context, status string) ([]NewEmployeeReview, error) {
	if f.record == nil {
		return nil, nil
	}
	return []NewEmployeeReview{*f.record}, nil
}
func (f *fakeRepo) FindByID(ctx context.Context, id int64) (*NewEmployeeReview, error) {
	return f.record, nil
}
func (f *fakeRepo) Update(ctx context.Context, rev *NewEmployeeReview) error {
	f.record = rev
	return nil
}

type fakeEmployeeRepo struct {
	employee.Repository
	createFn func(ctx context.Context, empl *employee.Employee) error
}

func (f *fakeEmployeeRepo) WithTx(tx *sql.Tx) employee.Repository { return f }
func (f *fakeEmployeeRepo) Create(ctx context.Context, empl *employee.Employee) error {
	return f.createFn(ctx, empl)
}

func pendingReview() *NewEmployeeReview {
	hire := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
	return &NewEmployeeReview{
		ID:         1,
		EmployeeID: 70105,
		FirstName:  "Jane",
		LastName:   "Smith",
		Batch:      "B42",
		HireDate:   &hire,
		Notes:      "New employee added from roster upload - pending admin review",
		Status:     StatusPending,
	}
}

func TestService_Approve(t *testing.T) {
	t.Run("creates active employee with derived email", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()

		repo := &fakeRepo{record: pendingReview()}
		var created employee.Employee
		emplRepo := &fakeEmployeeRepo{createFn: func(ctx context.Context, empl *employee.Employee) error {
			created = *empl
			return nil
		}}

		svc := NewService(db, repo, emplRepo, "example.com")

		mock.ExpectBegin()
		mock.ExpectCommit()

		resp, err := svc.Approve(context.Background(), 1, ApproveRequest{ReviewerID: "admin"})
		assert.NoError(t, err)
		assert.Equal(t, int64(70105), resp.EmployeeID)
		assert.Equal(t, "jane.smith@example.com", resp.Email)
		assert.Equal(t, employee.StatusActive, created.Status)
		assert.Equal(t, StatusVerified, repo.record.Status)
		assert.NotNil(t, repo.record.ReviewedAt)
		assert.Equal(t, "admin", *repo.record.ReviewedBy)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("second approval is rejected", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()

		rev := pendingReview()
		rev.Status = StatusVerified
		repo := &fakeRepo{record: rev}

		svc := NewService(db, repo, &fakeEmployeeRepo{}, "example.com")

		mock.ExpectBegin()
		mock.ExpectRollback()

		_, err := svc.Approve(context.Background(), 1, ApproveRequest{ReviewerID: "admin"})
		assert.ErrorIs(t, err, reviewerrors.ErrReviewNotPending)
	})

	t.Run("duplicate employee id maps to conflict", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()

		repo := &fakeRepo{record: pendingReview()}
		emplRepo := &fakeEmployeeRepo{createFn: func(ctx context.Context, empl *employee.Employee) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "employees_pkey"}
		}}

		svc := NewService(db, repo, emplRepo, "example.com")

		mock.ExpectBegin()
		mock.ExpectRollback()

		_, err := svc.Approve(context.Background(), 1, ApproveRequest{ReviewerID: "admin"})
		assert.ErrorIs(t, err, reviewerrors.ErrEmployeeAlreadyExists)
	})
}

func TestService_Reject(t *testing.T) {
	t.Run("prepends rejection notes", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()

		repo := &fakeRepo{record: pendingReview()}
		svc := NewService(db, repo, &fakeEmployeeRepo{}, "example.com")

		mock.ExpectBegin()
		mock.ExpectCommit()

		resp, err := svc.Reject(context.Background(), 1, RejectRequest{ReviewerID: "admin", Notes: "duplicate hire"})
		assert.NoError(t, err)
		assert.Equal(t, StatusRejected, resp.Status)
		assert.Contains(t, repo.record.Notes, "Rejected: duplicate hire")
		assert.Contains(t, repo.record.Notes, "pending admin review")
	})

	t.Run("re-rejection stacks notes and stays rejected", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()

		repo := &fakeRepo{record: pendingReview()}
		svc := NewService(db, repo, &fakeEmployeeRepo{}, "example.com")

		mock.ExpectBegin()
		mock.ExpectCommit()
		_, err := svc.Reject(context.Background(), 1, RejectRequest{ReviewerID: "admin", Notes: "first"})
		assert.NoError(t, err)

		mock.ExpectBegin()
		mock.ExpectCommit()
		resp, err := svc.Reject(context.Background(), 1, RejectRequest{ReviewerID: "admin", Notes: "second"})
		assert.NoError(t, err)
		assert.Equal(t, StatusRejected, resp.Status)
		assert.Contains(t, repo.record.Notes, "Rejected: second")
		assert.Contains(t, repo.record.Notes, "Rejected: first")
	})

	t.Run("verified review cannot be rejected", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()

		rev := pendingReview()
		rev.Status = StatusVerified
		repo := &fakeRepo{record: rev}
		svc := NewService(db, repo, &fakeEmployeeRepo{}, "example.com")

		mock.ExpectBegin()
		mock.ExpectRollback()

		_, err := svc.Reject(context.Background(), 1, RejectRequest{ReviewerID: "admin", Notes: "late"})
		assert.ErrorIs(t, err, reviewerrors.ErrReviewNotPending)
	})
}

func TestCompanyEmail(t *testing.T) {
	assert.Equal(t, "jane.smith@example.com", CompanyEmail("Jane", "Smith", "example.com"))
	assert.Equal(t, "jean-pierre.renoir@example.com", CompanyEmail("Jean-Pierre", "Renoir", "example.com"))
	assert.Equal(t, "mary.annlee@example.com", CompanyEmail("Mary", "Ann Lee", "example.com"))
}
