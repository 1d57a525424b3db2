package adminoption

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, opt *AdminOption) error
	FindByCategory(ctx context.Context, category string, activeOnly bool) ([]AdminOption, error)
	FindByID(ctx context.Context, id int64) (*AdminOption, error)
	Update(ctx context.Context, opt *AdminOption) error
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

func (r *repository) Create(ctx context.Context, opt *AdminOption) error {
	return r.db.WithContext(ctx).Create(opt).Error
}

func (r *repository) FindByCategory(ctx context.Context, category string, activeOnly bool) ([]AdminOption, error) {
	var opts []AdminOption
	q := r.db.WithContext(ctx).Where("category = ?", category).Order("value")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	err := q.Find(&opts).Error
	return opts, err
}

func (r *repository) FindByID(ctx context.Context, id int64) (*AdminOption, error) {
	var opt AdminOption
	err := r.db.WithContext(ctx).First(&opt, "id = ?", id).Error
	return &opt, err
}

func (r *repository) Update(ctx context.Context, opt *AdminOption) error {
	return r.db.WithContext(ctx).Save(opt).Error
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&AdminOption{}, "id = ?", id).Error
}
