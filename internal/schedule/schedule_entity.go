package schedule

import "time"

// Schedule is one planned work interval. Times are stored as canonical
// "HH:MM" strings; a row with no start/stop time is an "off" day.
type Schedule struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	EmployeeID int64     `gorm:"index:idx_schedule_employee_date"`
	StartDate  time.Time `gorm:"type:date;index:idx_schedule_employee_date"`
	StartTime  *string
	StopDate   time.Time `gorm:"type:date"`
	StopTime   *string
	WorkCode   *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type ScheduleHistory struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	EmployeeID int64     `gorm:"index"`
	StartDate  time.Time `gorm:"type:date"`
	StartTime  *string
	StopDate   time.Time `gorm:"type:date"`
	StopTime   *string
	WorkCode   *string
	ArchivedAt time.Time
}

func (ScheduleHistory) TableName() string { return "schedule_history" }
