package review

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=review_repo.go -destination=mock/review_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, rev *NewEmployeeReview) error
	FindAll(ctx context.Context, status string) ([]NewEmployeeReview, error)
	FindByID(ctx context.Context, id int64) (*NewEmployeeReview, error)
	Update(ctx context.Context, rev *NewEmployeeReview) error
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

func (r *repository) Create(ctx context.Context, rev *NewEmployeeReview) error {
	return r.db.WithContext(ctx).Create(rev).Error
}

func (r *repository) FindAll(ctx context.Context, status string) ([]NewEmployeeReview, error) {
	var revs []NewEmployeeReview
	q := r.db.WithContext(ctx).Order("created_at desc")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Find(&revs).Error
	return revs, err
}

func (r *repository) FindByID(ctx context.Context, id int64) (*NewEmployeeReview, error) {
	var rev NewEmployeeReview
	err := r.db.WithContext(ctx).First(&rev, "id = ?", id).Error
	return &rev, err
}

func (r *repository) Update(ctx context.Context, rev *NewEmployeeReview) error {
	return r.db.WithContext(ctx).Save(rev).Error
}
