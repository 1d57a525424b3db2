package review

import "time"

// Review lifecycle. Pending is the only non-terminal state.
const (
	StatusPending  = "Pending"
	StatusVerified = "Verified"
	StatusRejected = "Rejected"
)

// NewEmployeeReview stages an employee sourced from the untrusted
// new-roster upload format. Downstream schedule/attendance/exception
// logic never reads this table; a live Employee row only exists after
// approval.
type NewEmployeeReview struct {
	ID         int64 `gorm:"primaryKey;autoIncrement"`
	EmployeeID int64 `gorm:"index"`
	FirstName  string
	LastName   string
	Batch      string
	Supervisor string
	Manager    string
	Shift      string
	Department string
	Role       string
	HireDate   *time.Time `gorm:"type:date"`
	Phase1Date *time.Time `gorm:"type:date"`
	Phase2Date *time.Time `gorm:"type:date"`
	Phase3Date *time.Time `gorm:"type:date"`
	AgentID    *int64
	AxonifyID  *string
	BOUser     *string
	Notes      string
	Status     string `gorm:"default:Pending"`
	ReviewedBy *string
	ReviewedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (NewEmployeeReview) TableName() string { return "new_employee_reviews" }
