package attendance

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, att *Attendance) error
	FindByEmployeeAndDate(ctx context.Context, employeeID int64, date time.Time) (*Attendance, error)
	FindAllByDate(ctx context.Context, date time.Time) ([]Attendance, error)
	FindAllByEmployee(ctx context.Context, employeeID int64, from, to *time.Time) ([]Attendance, error)
	Update(ctx context.Context, att *Attendance) error
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

func (r *repository) Create(ctx context.Context, att *Attendance) error {
	return r.db.WithContext(ctx).Create(att).Error
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, employeeID int64, date time.Time) (*Attendance, error) {
	var att Attendance
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND date = ?", employeeID, date).
		First(&att).Error
	return &att, err
}

func (r *repository) FindAllByDate(ctx context.Context, date time.Time) ([]Attendance, error) {
	var atts []Attendance
	err := r.db.WithContext(ctx).
		Where("date = ?", date).
		Order("employee_id").
		Find(&atts).Error
	return atts, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID int64, from, to *time.Time) ([]Attendance, error) {
	var atts []Attendance
	q := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("date")
	if from != nil {
		q = q.Where("date >= ?", *from)
	}
	if to != nil {
		q = q.Where("date <= ?", *to)
	}
	err := q.Find(&atts).Error
	return atts, err
}

func (r *repository) Update(ctx context.Context, att *Attendance) error {
	return r.db.WithContext(ctx).Save(att).Error
}
