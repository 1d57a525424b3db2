package upload

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"opsdb/internal/employee"
	"opsdb/internal/review"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fakeReason struct {
	points int
	active bool
}

type fakeStore struct {
	employees   map[int64]bool
	directory   []employee.DirectoryEntry
	schedules   map[string]bool
	attendances map[string]bool
	reasons     map[int64]fakeReason

	flushed  *Batch
	flushErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		employees:   map[int64]bool{},
		schedules:   map[string]bool{},
		attendances: map[string]bool{},
		reasons:     map[int64]fakeReason{},
	}
}

func (f *fakeStore) EmployeeExists(_ context.Context, id int64) (bool, error) {
	return f.employees[id], nil
}

func (f *fakeStore) Directory(_ context.Context) ([]employee.DirectoryEntry, error) {
	return f.directory, nil
}

func (f *fakeStore) ScheduleExists(_ context.Context, employeeID int64, startDate time.Time) (bool, error) {
	return f.schedules[fmt.Sprintf("%d|%s", employeeID, startDate.Format("2006-01-02"))], nil
}

func (f *fakeStore) AttendanceExists(_ context.Context, employeeID int64, date time.Time) (bool, error) {
	return f.attendances[fmt.Sprintf("%d|%s", employeeID, date.Format("2006-01-02"))], nil
}

func (f *fakeStore) Reason(_ context.Context, id int64) (int, bool, bool, error) {
	r, ok := f.reasons[id]
	if !ok {
		return 0, false, false, nil
	}
	return r.points, r.active, true, nil
}

func (f *fakeStore) Flush(_ context.Context, batch *Batch) error {
	if f.flushErr != nil {
		return f.flushErr
	}
	f.flushed = batch
	return nil
}

func writeWorkbook(t *testing.T, rows [][]string) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	for r, row := range rows {
		for c, v := range row {
			cellName, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", cellName, v))
		}
	}

	path := filepath.Join(t.TempDir(), "upload.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

var legacyHeader = []string{
	"Odoo ID", "First Name", "Last Name", "Batch", "Supervisor",
	"Manager", "Shift", "Department", "Role", "Hire Date", "Company Email",
}

func legacyRow(id, first, last string) []string {
	return []string{
		id, first, last, "B1", "Sam Boss",
		"Mel Manager", "Night", "Support", "Agent", "2024-01-15", first + "." + last + "@example.com",
	}
}

func TestProcessEmployeeUpload_LegacyRoster(t *testing.T) {
	store := newFakeStore()
	store.employees[70103] = true
	svc := NewService(store)

	path := writeWorkbook(t, [][]string{
		legacyHeader,
		legacyRow("70101", "John", "Doe"),
		legacyRow("70102", "Jane", "Smith"),
		legacyRow("70103", "Al", "Exists"),
		legacyRow("70101", "John", "Doe"),
	})

	res := svc.ProcessEmployeeUpload(context.Background(), path)

	assert.Equal(t, 2, res.SuccessCount)
	assert.Equal(t, 2, res.ErrorCount)
	assert.Contains(t, res.Errors, "Row 4: Employee ID 70103 already exists - skipping")
	assert.Contains(t, res.Errors, "Row 5: Employee ID 70101 already exists - skipping")

	require.NotNil(t, store.flushed)
	require.Len(t, store.flushed.Employees, 2)

	first := store.flushed.Employees[0]
	assert.Equal(t, int64(70101), first.ID)
	assert.Equal(t, "John Doe", first.FullName)
	assert.Equal(t, employee.StatusActive, first.Status)
	if assert.NotNil(t, first.RuexID) {
		assert.Equal(t, "jdoe", *first.RuexID)
	}
	if assert.NotNil(t, first.HireDate) {
		assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), *first.HireDate)
	}
}

func TestProcessEmployeeUpload_CarriesOptionalColumns(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	header := append(append([]string{}, legacyHeader...), "BO User", "Tier", "Agent ID", "Axonify")
	row := append(legacyRow("70110", "Mia", "Wong"), "mwong.bo", "2", "555", "AX-9")
	path := writeWorkbook(t, [][]string{header, row})

	res := svc.ProcessEmployeeUpload(context.Background(), path)

	assert.Equal(t, 1, res.SuccessCount)
	assert.Equal(t, 0, res.ErrorCount)
	require.NotNil(t, store.flushed)
	require.Len(t, store.flushed.Employees, 1)

	empl := store.flushed.Employees[0]
	if assert.NotNil(t, empl.BOUser) {
		assert.Equal(t, "mwong.bo", *empl.BOUser)
	}
	if assert.NotNil(t, empl.Tier) {
		assert.Equal(t, 2, *empl.Tier)
	}
	if assert.NotNil(t, empl.AgentID) {
		assert.Equal(t, int64(555), *empl.AgentID)
	}
	if assert.NotNil(t, empl.AxonifyID) {
		assert.Equal(t, "AX-9", *empl.AxonifyID)
	}
}

func TestProcessEmployeeUpload_ReimportSkipsEverything(t *testing.T) {
	store := newFakeStore()
	store.employees[70101] = true
	store.employees[70102] = true
	svc := NewService(store)

	path := writeWorkbook(t, [][]string{
		legacyHeader,
		legacyRow("70101", "John", "Doe"),
		legacyRow("70102", "Jane", "Smith"),
	})

	res := svc.ProcessEmployeeUpload(context.Background(), path)

	assert.Equal(t, 0, res.SuccessCount)
	assert.Equal(t, 2, res.ErrorCount)
	for _, msg := range res.Errors {
		assert.Contains(t, msg, "already exists - skipping")
	}
	require.NotNil(t, store.flushed)
	assert.Empty(t, store.flushed.Employees)
}

func TestProcessEmployeeUpload_NewRosterRoutesToReview(t *testing.T) {
	store := newFakeStore()
	store.employees[80002] = true
	svc := NewService(store)

	header := []string{
		"#", "Name", "Last Name", "First Name", "Batch", "Supervisor",
		"Manager", "Shift", "Department", "Role", "Hire Date", "BO User",
	}
	path := writeWorkbook(t, [][]string{
		header,
		{"80001", "Smith, Jane", "", "", "B7", "Sam Boss", "Mel Manager", "Day", "Support", "Agent", "2024-03-01", "jsmith.bo"},
		{"80002", "", "Doe", "John", "B7", "Sam Boss", "Mel Manager", "Day", "Support", "Agent", "2024-03-01", ""},
	})

	res := svc.ProcessEmployeeUpload(context.Background(), path)

	assert.Equal(t, 1, res.SuccessCount)
	assert.Equal(t, 1, res.ErrorCount)
	assert.Contains(t, res.Errors, "Row 3: Employee ID 80002 already exists - skipping")

	require.NotNil(t, store.flushed)
	assert.Empty(t, store.flushed.Employees, "new roster rows never hit the live table directly")
	require.Len(t, store.flushed.Reviews, 1)

	rev := store.flushed.Reviews[0]
	assert.Equal(t, int64(80001), rev.EmployeeID)
	assert.Equal(t, "Jane", rev.FirstName)
	assert.Equal(t, "Smith", rev.LastName)
	assert.Equal(t, review.StatusPending, rev.Status)
	assert.Equal(t, "New employee added from roster upload - pending admin review", rev.Notes)
	if assert.NotNil(t, rev.BOUser) {
		assert.Equal(t, "jsmith.bo", *rev.BOUser)
	}
}

var scheduleHeader = []string{
	"Employee - ID", "Date - Nominal Date", "Earliest - Start", "Latest - Stop", "Work - Code",
}

func TestProcessScheduleUpload_MissingColumnIsFatal(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	path := writeWorkbook(t, [][]string{
		{"Employee - ID", "Date - Nominal Date", "Earliest - Start", "Latest - Stop"},
		{"70101", "2024-01-15", "08:00", "17:00"},
	})

	res := svc.ProcessScheduleUpload(context.Background(), path, "")

	assert.Equal(t, 0, res.SuccessCount)
	assert.Equal(t, 1, res.ErrorCount)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "Work - Code")
	assert.Nil(t, store.flushed, "nothing is committed when the header is unusable")
}

func TestProcessScheduleUpload_RowErrorDoesNotAbortFile(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	rows := [][]string{scheduleHeader}
	for i := 0; i < 10; i++ {
		date := fmt.Sprintf("2024-01-%02d", i+1)
		if i == 4 {
			date = "not a date"
		}
		rows = append(rows, []string{"70101", date, "08:00", "17:00", "REG"})
	}
	path := writeWorkbook(t, rows)

	res := svc.ProcessScheduleUpload(context.Background(), path, "")

	assert.Equal(t, 9, res.SuccessCount)
	assert.Equal(t, 1, res.ErrorCount)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "Row 6:")
	require.NotNil(t, store.flushed)
	assert.Len(t, store.flushed.Schedules, 9)
}

func TestProcessScheduleUpload_OvernightShift(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	path := writeWorkbook(t, [][]string{
		scheduleHeader,
		{"70101", "2024-01-15", "22:00", "06:00", "REG"},
		{"70101", "2024-01-16", "", "", ""},
	})

	res := svc.ProcessScheduleUpload(context.Background(), path, "")

	assert.Equal(t, 2, res.SuccessCount)
	assert.Equal(t, 0, res.ErrorCount)
	require.NotNil(t, store.flushed)
	require.Len(t, store.flushed.Schedules, 2)

	overnight := store.flushed.Schedules[0]
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), overnight.StartDate)
	assert.Equal(t, time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC), overnight.StopDate)

	off := store.flushed.Schedules[1]
	assert.Nil(t, off.StartTime)
	assert.Nil(t, off.StopTime)
	assert.Equal(t, off.StartDate, off.StopDate)
}

func TestProcessScheduleUpload_DuplicatesReportedSeparately(t *testing.T) {
	store := newFakeStore()
	store.schedules["70101|2024-01-15"] = true
	svc := NewService(store)

	path := writeWorkbook(t, [][]string{
		scheduleHeader,
		{"70101", "2024-01-15", "08:00", "17:00", "REG"},
		{"70101", "2024-01-16", "08:00", "17:00", "REG"},
		{"70101", "2024-01-16", "09:00", "18:00", "REG"},
	})

	res := svc.ProcessScheduleUpload(context.Background(), path, "")

	assert.Equal(t, 1, res.SuccessCount)
	assert.Equal(t, 0, res.ErrorCount, "duplicates are not row errors")
	assert.Len(t, res.Duplicates, 2)
	require.NotNil(t, store.flushed)
	assert.Len(t, store.flushed.Schedules, 1)
}

func TestProcessScheduleUpload_ShortCodeResolution(t *testing.T) {
	store := newFakeStore()
	store.directory = []employee.DirectoryEntry{
		{ID: 70102, FirstName: "Jane", LastName: "Smith"},
	}
	svc := NewService(store)

	mappingPath := writeWorkbook(t, [][]string{
		{"Odoo ID", "First Name", "Last Name"},
		{"70101", "John", "Doe"},
	})
	path := writeWorkbook(t, [][]string{
		scheduleHeader,
		{"jdoe", "2024-01-15", "08:00", "17:00", "REG"},
		{"jsmith", "2024-01-15", "08:00", "17:00", "REG"},
		{"nobody", "2024-01-15", "08:00", "17:00", "REG"},
	})

	res := svc.ProcessScheduleUpload(context.Background(), path, mappingPath)

	assert.Equal(t, 2, res.SuccessCount)
	assert.Equal(t, 1, res.ErrorCount)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "Row 4:")
	assert.Contains(t, res.Errors[0], "nobody")

	require.NotNil(t, store.flushed)
	require.Len(t, store.flushed.Schedules, 2)
	assert.Equal(t, int64(70101), store.flushed.Schedules[0].EmployeeID)
	assert.Equal(t, int64(70102), store.flushed.Schedules[1].EmployeeID)
}

func TestProcessScheduleUpload_DoubledHeaderRowIsSkipped(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	path := writeWorkbook(t, [][]string{
		scheduleHeader,
		scheduleHeader, // some exports repeat the header
		{"70101", "2024-01-15", "08:00", "17:00", "REG"},
		{"70101", "bogus", "08:00", "17:00", "REG"},
	})

	res := svc.ProcessScheduleUpload(context.Background(), path, "")

	assert.Equal(t, 1, res.SuccessCount)
	assert.Equal(t, 1, res.ErrorCount)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "Row 4:", "row numbers track the physical file")
}

func TestProcessAttendanceUpload(t *testing.T) {
	header := []string{"Employee - ID", "Date", "Check In", "Check Out", "Exception", "Notes"}

	t.Run("check in is required", func(t *testing.T) {
		store := newFakeStore()
		svc := NewService(store)

		path := writeWorkbook(t, [][]string{
			header,
			{"70101", "2024-01-15", "", "17:00", "", ""},
			{"70101", "2024-01-16", "08:05", "17:00", "Late", "traffic"},
		})

		res := svc.ProcessAttendanceUpload(context.Background(), path)

		assert.Equal(t, 1, res.SuccessCount)
		assert.Equal(t, 1, res.ErrorCount)
		require.Len(t, res.Errors, 1)
		assert.Equal(t, "Row 2: Check In is required", res.Errors[0])

		require.NotNil(t, store.flushed)
		require.Len(t, store.flushed.Attendances, 1)
		att := store.flushed.Attendances[0]
		assert.Equal(t, int64(70101), att.EmployeeID)
		if assert.NotNil(t, att.ExceptionType) {
			assert.Equal(t, "Late", *att.ExceptionType)
		}
		assert.Equal(t, "traffic", att.Notes)
	})

	t.Run("already recorded day is a row error", func(t *testing.T) {
		store := newFakeStore()
		store.attendances["70101|2024-01-15"] = true
		svc := NewService(store)

		path := writeWorkbook(t, [][]string{
			header,
			{"70101", "2024-01-15", "08:00", "17:00", "", ""},
			{"70101", "2024-01-16", "08:00", "17:00", "", ""},
			{"70101", "2024-01-16", "08:30", "17:00", "", ""},
		})

		res := svc.ProcessAttendanceUpload(context.Background(), path)

		assert.Equal(t, 1, res.SuccessCount)
		assert.Equal(t, 2, res.ErrorCount)
		require.NotNil(t, store.flushed)
		assert.Len(t, store.flushed.Attendances, 1)
	})
}

func TestProcessExceptionUpload(t *testing.T) {
	header := []string{"Employee - ID", "Exception Type", "Start Date", "End Date", "Work Code", "Notes"}
	store := newFakeStore()
	svc := NewService(store)

	path := writeWorkbook(t, [][]string{
		header,
		{"70101", "Vacation", "2024-02-01", "2024-02-05", "", "annual leave"},
		{"70102", "Training", "2024-02-10", "2024-02-01", "TRN", ""},
		{"70103", "", "2024-02-01", "2024-02-02", "", ""},
	})

	res := svc.ProcessExceptionUpload(context.Background(), path)

	assert.Equal(t, 1, res.SuccessCount)
	assert.Equal(t, 2, res.ErrorCount)
	assert.Contains(t, res.Errors, "Row 3: end date is before start date")
	assert.Contains(t, res.Errors, "Row 4: Exception Type is required")

	require.NotNil(t, store.flushed)
	require.Len(t, store.flushed.Exceptions, 1)
	exc := store.flushed.Exceptions[0]
	assert.Equal(t, "Vacation", exc.Type)
	assert.Equal(t, "Pending", exc.Status)
	assert.Equal(t, "annual leave", exc.Notes)
}

func TestProcessRewardUpload(t *testing.T) {
	header := []string{"Employee - ID", "Reason ID", "Points", "Date Awarded", "Notes"}
	store := newFakeStore()
	store.employees[70101] = true
	store.employees[70102] = true
	store.reasons[1] = fakeReason{points: 50, active: true}
	store.reasons[2] = fakeReason{points: 25, active: false}
	svc := NewService(store)

	path := writeWorkbook(t, [][]string{
		header,
		{"70101", "1", "50", "2024-01-15", "great week"},
		{"70102", "2", "25", "2024-01-15", ""},
		{"70102", "9", "10", "2024-01-15", ""},
		{"99999", "1", "50", "2024-01-15", ""},
	})

	res := svc.ProcessRewardUpload(context.Background(), path)

	assert.Equal(t, 1, res.SuccessCount)
	assert.Equal(t, 3, res.ErrorCount)
	assert.Contains(t, res.Errors, "Row 3: reward reason 2 is inactive")
	assert.Contains(t, res.Errors, "Row 4: reward reason 9 not found")
	assert.Contains(t, res.Errors, "Row 5: employee 99999 not found")

	require.NotNil(t, store.flushed)
	require.Len(t, store.flushed.Rewards, 1)
	award := store.flushed.Rewards[0]
	assert.Equal(t, int64(70101), award.EmployeeID)
	assert.Equal(t, 50, award.Points)
	assert.Equal(t, "great week", award.Notes)
}

func TestFlushFailureVoidsWholeBatch(t *testing.T) {
	store := newFakeStore()
	store.flushErr = errors.New("connection reset")
	svc := NewService(store)

	path := writeWorkbook(t, [][]string{
		legacyHeader,
		legacyRow("70101", "John", "Doe"),
		legacyRow("70102", "Jane", "Smith"),
	})

	res := svc.ProcessEmployeeUpload(context.Background(), path)

	assert.Equal(t, 0, res.SuccessCount, "a failed commit voids every staged row")
	assert.Equal(t, 1, res.ErrorCount)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "Error saving batch")
}

func TestProcessEmployeeUpload_UnreadableFile(t *testing.T) {
	svc := NewService(newFakeStore())

	res := svc.ProcessEmployeeUpload(context.Background(), filepath.Join(t.TempDir(), "missing.xlsx"))

	assert.Equal(t, 0, res.SuccessCount)
	assert.Equal(t, 1, res.ErrorCount)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "Error reading file")
}
