package attendance

import "time"

// Exception tags carried on an attendance row.
const (
	ExceptionLate       = "Late"
	ExceptionAbsent     = "Absent"
	ExceptionEarlyLeave = "Early Leave"
	ExceptionOvertime   = "Overtime"
	ExceptionCoverUp    = "Cover Up"
	ExceptionLeave      = "Leave"
)

// Attendance is the realized record for one employee on one date. At
// most one row exists per (employee, date).
type Attendance struct {
	ID              int64     `gorm:"primaryKey;autoIncrement"`
	EmployeeID      int64     `gorm:"uniqueIndex:uq_attendance_employee_date"`
	Date            time.Time `gorm:"type:date;uniqueIndex:uq_attendance_employee_date"`
	CheckIn         *string
	CheckOut        *string
	ExceptionType   *string
	LateMinutes     int
	OvertimeMinutes int
	EarlyLeave      bool
	CoverUpForID    *int64
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type AttendanceHistory struct {
	ID              int64     `gorm:"primaryKey;autoIncrement"`
	EmployeeID      int64     `gorm:"index"`
	Date            time.Time `gorm:"type:date"`
	CheckIn         *string
	CheckOut        *string
	ExceptionType   *string
	LateMinutes     int
	OvertimeMinutes int
	EarlyLeave      bool
	CoverUpForID    *int64
	Notes           string
	ArchivedAt      time.Time
}

func (AttendanceHistory) TableName() string { return "attendance_history" }
