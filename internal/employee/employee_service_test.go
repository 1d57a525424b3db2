package employee

import (
	"context"
	"database/sql"
	"testing"
	"time"

	employeeerrors "opsdb/internal/employee/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	withTxFn    func(tx *sql.Tx) Repository
	createFn    func(ctx context.Context, empl *Employee) error
	findAllFn   func(ctx context.Context, status string) ([]Employee, error)
	findByIDFn  func(ctx context.Context, id int64) (*Employee, error)
	existsFn    func(ctx context.Context, id int64) (bool, error)
	directoryFn func(ctx context.Context) ([]DirectoryEntry, error)
	updateFn    func(ctx context.Context, empl *Employee) error
	archiveFn   func(ctx context.Context, empl *Employee) error
	deleteFn    func(ctx context.Context, id int64) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f.withTxFn(tx) }
func (f *fakeRepo) Create(ctx context.Context, empl *Employee) error {
	return f.createFn(ctx, empl)
}
func (f *fakeRepo) FindAll(ctx context.Context, status string) ([]Employee, error) {
	return f.findAllFn(ctx, status)
}
func (f *fakeRepo) FindByID(ctx context.Context, id int64) (*Employee, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) Exists(ctx context.Context, id int64) (bool, error) {
	return f.existsFn(ctx, id)
}
func (f *fakeRepo) Directory(ctx context.Context) ([]DirectoryEntry, error) {
	return f.directoryFn(ctx)
}
func (f *fakeRepo) Update(ctx context.Context, empl *Employee) error {
	return f.updateFn(ctx, empl)
}
func (f *fakeRepo) ArchiveToHistory(ctx context.Context, empl *Employee) error {
	return f.archiveFn(ctx, empl)
}
func (f *fakeRepo) Delete(ctx context.Context, id int64) error { return f.deleteFn(ctx, id) }

func TestService_Create(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		var saved Employee
		repo := &fakeRepo{}
		repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
		repo.createFn = func(ctx context.Context, empl *Employee) error {
			saved = *empl
			return nil
		}

		svc := NewService(db, repo, nil)

		mock.ExpectBegin()
		mock.ExpectCommit()

		resp, err := svc.Create(ctx, CreateEmployeeRequest{
			ID:        70101,
			FirstName: "Jane",
			LastName:  "Smith",
			HireDate:  "2024-03-01",
		})

		assert.NoError(t, err)
		assert.Equal(t, int64(70101), resp.ID)
		assert.Equal(t, "Jane Smith", saved.FullName)
		assert.Equal(t, StatusActive, saved.Status)
		assert.NotNil(t, saved.HireDate)
		assert.Equal(t, "2024-03-01", saved.HireDate.Format("2006-01-02"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid hire date", func(t *testing.T) {
		repo := &fakeRepo{}
		svc := NewService(db, repo, nil)

		_, err := svc.Create(ctx, CreateEmployeeRequest{
			ID:        70102,
			FirstName: "Jane",
			LastName:  "Smith",
			HireDate:  "03/01/2024",
		})

		assert.ErrorIs(t, err, employeeerrors.ErrInvalidHireDate)
	})
}

func TestService_Delete_ArchivesBeforeRemoval(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	ctx := context.Background()
	hire := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)

	archived := false
	deleted := false
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByIDFn = func(ctx context.Context, id int64) (*Employee, error) {
		return &Employee{ID: id, FirstName: "John", LastName: "Doe", HireDate: &hire, Status: StatusActive}, nil
	}
	repo.archiveFn = func(ctx context.Context, empl *Employee) error {
		archived = true
		return nil
	}
	repo.deleteFn = func(ctx context.Context, id int64) error {
		assert.True(t, archived, "archive must happen before delete")
		deleted = true
		return nil
	}

	svc := NewService(db, repo, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := svc.Delete(ctx, 70103)
	assert.NoError(t, err)
	assert.True(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Delete_NotFoundRollsBack(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByIDFn = func(ctx context.Context, id int64) (*Employee, error) {
		return nil, gorm.ErrRecordNotFound
	}

	svc := NewService(db, repo, nil)

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := svc.Delete(context.Background(), 404)
	assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
