package schedule

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=schedule_repo.go -destination=mock/schedule_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, sched *Schedule) error
	FindAll(ctx context.Context, employeeID int64, from, to *time.Time) ([]Schedule, error)
	FindByID(ctx context.Context, id int64) (*Schedule, error)
	ExistsForEmployeeAndDate(ctx context.Context, employeeID int64, startDate time.Time) (bool, error)
	Update(ctx context.Context, sched *Schedule) error
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

func (r *repository) Create(ctx context.Context, sched *Schedule) error {
	return r.db.WithContext(ctx).Create(sched).Error
}

func (r *repository) FindAll(ctx context.Context, employeeID int64, from, to *time.Time) ([]Schedule, error) {
	var scheds []Schedule
	q := r.db.WithContext(ctx).Order("start_date, employee_id")
	if employeeID != 0 {
		q = q.Where("employee_id = ?", employeeID)
	}
	if from != nil {
		q = q.Where("start_date >= ?", *from)
	}
	if to != nil {
		q = q.Where("start_date <= ?", *to)
	}
	err := q.Find(&scheds).Error
	return scheds, err
}

func (r *repository) FindByID(ctx context.Context, id int64) (*Schedule, error) {
	var sched Schedule
	err := r.db.WithContext(ctx).First(&sched, "id = ?", id).Error
	return &sched, err
}

func (r *repository) ExistsForEmployeeAndDate(ctx context.Context, employeeID int64, startDate time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Schedule{}).
		Where("employee_id = ? AND start_date = ?", employeeID, startDate).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Update(ctx context.Context, sched *Schedule) error {
	return r.db.WithContext(ctx).Save(sched).Error
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&Schedule{}, "id = ?", id).Error
}
