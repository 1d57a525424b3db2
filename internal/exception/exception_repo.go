package exception

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=exception_repo.go -destination=mock/exception_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, exc *ExceptionRecord) error
	FindAll(ctx context.Context, status string) ([]ExceptionRecord, error)
	FindByID(ctx context.Context, id int64) (*ExceptionRecord, error)
	Update(ctx context.Context, exc *ExceptionRecord) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, exc *ExceptionRecord) error {
	return r.db.WithContext(ctx).Create(exc).Error
}

func (r *repository) FindAll(ctx context.Context, status string) ([]ExceptionRecord, error) {
	var excs []ExceptionRecord
	q := r.db.WithContext(ctx).Order("start_date desc")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Find(&excs).Error
	return excs, err
}

func (r *repository) FindByID(ctx context.Context, id int64) (*ExceptionRecord, error) {
	var exc ExceptionRecord
	err := r.db.WithContext(ctx).First(&exc, "id = ?", id).Error
	return &exc, err
}

func (r *repository) Update(ctx context.Context, exc *ExceptionRecord) error {
	return r.db.WithContext(ctx).Save(exc).Error
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&ExceptionRecord{}, "id = ?", id).Error
}
