package employee

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

// DirectoryEntry is the slim projection used for short-code identity
// resolution during spreadsheet imports.
type DirectoryEntry struct {
	ID        int64
	FirstName string
	LastName  string
}

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, empl *Employee) error
	FindAll(ctx context.Context, status string) ([]Employee, error)
	FindByID(ctx context.Context, id int64) (*Employee, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Directory(ctx context.Context) ([]DirectoryEntry, error)
	Update(ctx context.Context, empl *Employee) error
	ArchiveToHistory(ctx context.Context, empl *Employee) error
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
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Create(empl).Error
}

func (r *repository) FindAll(ctx context.Context, status string) ([]Employee, error) {
	var empls []Employee
	q := r.db.WithContext(ctx).Order("last_name, first_name")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Find(&empls).Error
	return empls, err
}

func (r *repository) FindByID(ctx context.Context, id int64) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).First(&empl, "id = ?", id).Error
	return &empl, err
}

func (r *repository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Directory(ctx context.Context) ([]DirectoryEntry, error) {
	var entries []DirectoryEntry
	err := r.db.WithContext(ctx).
		Model(&Employee{}).
		Select("id, first_name, last_name").
		Scan(&entries).Error
	return entries, err
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Save(empl).Error
}

func (r *repository) ArchiveToHistory(ctx context.Context, empl *Employee) error {
	hist := EmployeeHistory{
		EmployeeID:    empl.ID,
		FirstName:     empl.FirstName,
		LastName:      empl.LastName,
		FullName:      empl.FullName,
		CompanyEmail:  empl.CompanyEmail,
		Batch:         empl.Batch,
		Supervisor:    empl.Supervisor,
		Manager:       empl.Manager,
		Shift:         empl.Shift,
		Department:    empl.Department,
		Role:          empl.Role,
		HireDate:      empl.HireDate,
		Status:        empl.Status,
		AttritionDate: empl.AttritionDate,
		PointBalance:  empl.PointBalance,
		ArchivedAt:    time.Now().UTC(),
	}
	return r.db.WithContext(ctx).Create(&hist).Error
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&Employee{}, "id = ?", id).Error
}
