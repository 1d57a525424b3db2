package employee

import "time"

// Employee is the canonical workforce record. The ID is assigned
// externally (payroll system) and is immutable once created.
type Employee struct {
	ID            int64  `gorm:"primaryKey;autoIncrement:false"`
	FirstName     string `gorm:"not null"`
	LastName      string `gorm:"not null"`
	FullName      string
	CompanyEmail  string `gorm:"uniqueIndex:uq_employee_email"`
	Batch         string
	AgentID       *int64
	RuexID        *string
	AxonifyID     *string
	BOUser        *string
	Supervisor    string
	Manager       string
	Tier          *int
	Shift         string
	Department    string
	Role          string
	HireDate      *time.Time `gorm:"type:date"`
	Phase1Date    *time.Time `gorm:"type:date"`
	Phase2Date    *time.Time `gorm:"type:date"`
	Phase3Date    *time.Time `gorm:"type:date"`
	Status        string     `gorm:"default:Active"`
	AttritionDate *time.Time `gorm:"type:date"`
	PointBalance  int        `gorm:"default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// EmployeeHistory is the append-only archive row. No foreign keys back
// to the active table.
type EmployeeHistory struct {
	ID            int64 `gorm:"primaryKey;autoIncrement"`
	EmployeeID    int64 `gorm:"index"`
	FirstName     string
	LastName      string
	FullName      string
	CompanyEmail  string
	Batch         string
	Supervisor    string
	Manager       string
	Shift         string
	Department    string
	Role          string
	HireDate      *time.Time `gorm:"type:date"`
	Status        string
	AttritionDate *time.Time `gorm:"type:date"`
	PointBalance  int
	ArchivedAt    time.Time
}

func (EmployeeHistory) TableName() string { return "employee_history" }

// Lifecycle statuses.
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
	StatusOnLeave  = "On Leave"
)
