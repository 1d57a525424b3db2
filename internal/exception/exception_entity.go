package exception

import "time"

// Exception lifecycle.
const (
	StatusPending   = "Pending"
	StatusCompleted = "Completed"
)

// Known exception types. Leave-like types synthesize "off" schedules;
// training-like types synthesize default working-hour schedules;
// Overtime and Cover Up land on attendance instead.
const (
	TypeTraining        = "Training"
	TypeNesting         = "Nesting"
	TypeNewHireTraining = "New Hire Training"
	TypeVacation        = "Vacation"
	TypeSick            = "Sick"
	TypePersonal        = "Personal"
	TypeUnplanned       = "Unplanned"
	TypeCoverUp         = "Cover Up"
	TypeOvertime        = "Overtime"
)

type ExceptionRecord struct {
	ID                 int64     `gorm:"primaryKey;autoIncrement"`
	EmployeeID         int64     `gorm:"index"`
	Type               string    `gorm:"not null"`
	StartDate          time.Time `gorm:"type:date"`
	EndDate            time.Time `gorm:"type:date"`
	WorkCode           *string
	SupervisorOverride *string
	Notes              string
	Status             string `gorm:"default:Pending"`
	ProcessedBy        *string
	ProcessedAt        *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (ExceptionRecord) TableName() string { return "exception_records" }
