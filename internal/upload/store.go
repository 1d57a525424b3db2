package upload

import (
	"context"
	"time"

	"opsdb/internal/attendance"
	"opsdb/internal/employee"
	"opsdb/internal/exception"
	"opsdb/internal/review"
	"opsdb/internal/reward"
	"opsdb/internal/schedule"
)

// Batch holds everything one upload staged in memory. Nothing is
// persisted until Flush, so a commit failure discards the whole file
// atomically.
type Batch struct {
	Employees   []employee.Employee
	Reviews     []review.NewEmployeeReview
	Schedules   []schedule.Schedule
	Attendances []attendance.Attendance
	Exceptions  []exception.ExceptionRecord
	Rewards     []reward.EmployeeReward
}

func (b *Batch) empty() bool {
	return len(b.Employees) == 0 && len(b.Reviews) == 0 &&
		len(b.Schedules) == 0 && len(b.Attendances) == 0 &&
		len(b.Exceptions) == 0 && len(b.Rewards) == 0
}

// Store is the persistence boundary the upload pipeline sees. Lookups
// observe committed state only; staged rows of the batch in flight are
// invisible to them, which is why the importers keep their own
// seen sets.
//
//go:generate mockgen -source=store.go -destination=mock/store_mock.go -package=mock
type Store interface {
	EmployeeExists(ctx context.Context, id int64) (bool, error)
	Directory(ctx context.Context) ([]employee.DirectoryEntry, error)
	ScheduleExists(ctx context.Context, employeeID int64, startDate time.Time) (bool, error)
	AttendanceExists(ctx context.Context, employeeID int64, date time.Time) (bool, error)
	Reason(ctx context.Context, id int64) (points int, active bool, found bool, err error)
	Flush(ctx context.Context, batch *Batch) error
}
