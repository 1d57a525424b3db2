package upload

import (
	"context"
	"fmt"

	"opsdb/internal/attendance"
	"opsdb/internal/employee"
	"opsdb/internal/exception"
	"opsdb/internal/review"
	"opsdb/internal/reward"
	"opsdb/internal/schedule"

	"go.uber.org/zap"
)

const reviewPendingNote = "New employee added from roster upload - pending admin review"

// Service runs one spreadsheet through detection, normalization,
// identity resolution and staging, and reports the per-row outcome.
// Row problems never abort the file; only unreadable input, missing
// required columns, and commit failures are fatal to the upload.
//
//go:generate mockgen -source=service.go -destination=mock/service_mock.go -package=mock
type Service interface {
	ProcessEmployeeUpload(ctx context.Context, path string) Result
	ProcessScheduleUpload(ctx context.Context, path, mappingPath string) Result
	ProcessAttendanceUpload(ctx context.Context, path string) Result
	ProcessExceptionUpload(ctx context.Context, path string) Result
	ProcessRewardUpload(ctx context.Context, path string) Result
}

type service struct {
	store  Store
	logger *zap.Logger
}

func NewService(store Store, logger ...*zap.Logger) Service {
	l := zap.L().Named("upload.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("upload.service")
	}
	return &service{store: store, logger: l}
}

func (s *service) ProcessEmployeeUpload(ctx context.Context, path string) Result {
	rows, err := ReadWorkbook(path)
	if err != nil {
		return fatal("Error reading file: " + err.Error())
	}
	if len(rows) < 2 {
		return fatal("Error reading file: no data rows")
	}

	headers, data := rows[0], rows[1:]

	var res Result
	switch DetectEmployeeFormat(headers) {
	case FormatNewRoster:
		res = s.importNewRoster(ctx, headers, data)
	default:
		res = s.importLegacyRoster(ctx, headers, data)
	}

	s.logger.Info("employee upload processed",
		zap.String("path", path),
		zap.Int("success", res.SuccessCount),
		zap.Int("errors", res.ErrorCount),
	)
	return res
}

func (s *service) importLegacyRoster(ctx context.Context, headers []string, data [][]string) Result {
	idx := headerIndex(headers)
	if missing := missingColumns(idx, legacyRosterColumns); len(missing) > 0 {
		return fatal(fmt.Sprintf("Missing required columns: %v", missing))
	}

	var res Result
	batch := &Batch{}
	seen := make(map[int64]bool)

	for i, row := range data {
		rowNum := i + 2

		id, err := ParseIntCell(cell(row, idx, "Odoo ID"))
		if err != nil {
			res.addError(fmt.Sprintf("Row %d: invalid Odoo ID: %v", rowNum, err))
			continue
		}

		exists, err := s.store.EmployeeExists(ctx, id)
		if err != nil {
			res.addError(fmt.Sprintf("Row %d: %v", rowNum, err))
			continue
		}
		if exists || seen[id] {
			res.addError(fmt.Sprintf("Row %d: Employee ID %d already exists - skipping", rowNum, id))
			continue
		}

		first := cell(row, idx, "First Name")
		last := cell(row, idx, "Last Name")
		if first == "" || last == "" {
			res.addError(fmt.Sprintf("Row %d: first and last name are required", rowNum))
			continue
		}

		hireDate, err := ParseOptionalDateCell(cell(row, idx, "Hire Date"))
		if err != nil {
			res.addError(fmt.Sprintf("Row %d: %v", rowNum, err))
			continue
		}

		empl := employee.Employee{
			ID:           id,
			FirstName:    first,
			LastName:     last,
			FullName:     first + " " + last,
			CompanyEmail: cell(row, idx, "Company Email"),
			Batch:        cell(row, idx, "Batch"),
			Supervisor:   cell(row, idx, "Supervisor"),
			Manager:      cell(row, idx, "Manager"),
			Shift:        cell(row, idx, "Shift"),
			Department:   cell(row, idx, "Department"),
			Role:         cell(row, idx, "Role"),
			HireDate:     hireDate,
			AxonifyID:    OptionalString(cell(row, idx, "Axonify")),
			BOUser:       OptionalString(cell(row, idx, "BO User")),
			Status:       employee.StatusActive,
		}
		if code := ShortCode(first, last); code != "" {
			empl.RuexID = &code
		}
		if raw := cell(row, idx, "Tier"); raw != "" {
			if n, err := ParseIntCell(raw); err == nil {
				tier := int(n)
				empl.Tier = &tier
			} else {
				res.addError(fmt.Sprintf("Row %d: invalid Tier: %v", rowNum, err))
				continue
			}
		}
		if raw := cell(row, idx, "Agent ID"); raw != "" {
			if n, err := ParseIntCell(raw); err == nil {
				empl.AgentID = &n
			} else {
				res.addError(fmt.Sprintf("Row %d: invalid Agent ID: %v", rowNum, err))
				continue
			}
		}

		seen[id] = true
		batch.Employees = append(batch.Employees, empl)
		res.SuccessCount++
	}

	return s.flush(ctx, batch, res)
}

func (s *service) importNewRoster(ctx context.Context, headers []string, data [][]string) Result {
	idx := headerIndex(headers)
	if missing := missingColumns(idx, newRosterColumns); len(missing) > 0 {
		return fatal(fmt.Sprintf("Missing required columns: %v", missing))
	}

	var res Result
	batch := &Batch{}
	seen := make(map[int64]bool)

	for i, row := range data {
		rowNum := i + 2

		id, err := ParseIntCell(cell(row, idx, "#"))
		if err != nil {
			res.addError(fmt.Sprintf("Row %d: invalid employee number: %v", rowNum, err))
			continue
		}

		exists, err := s.store.EmployeeExists(ctx, id)
		if err != nil {
			res.addError(fmt.Sprintf("Row %d: %v", rowNum, err))
			continue
		}
		if exists || seen[id] {
			res.addError(fmt.Sprintf("Row %d: Employee ID %d already exists - skipping", rowNum, id))
			continue
		}

		first := cell(row, idx, "First Name")
		last := cell(row, idx, "Last Name")
		if first == "" && last == "" {
			first, last = ParseName(cell(row, idx, "Name"))
		}
		if first == "" && last == "" {
			res.addError(fmt.Sprintf("Row %d: employee name is required", rowNum))
			continue
		}

		hireDate, err := ParseOptionalDateCell(cell(row, idx, "Hire Date"))
		if err != nil {
			res.addError(fmt.Sprintf("Row %d: %v", rowNum, err))
			continue
		}
		phase1, err := ParseOptionalDateCell(cell(row, idx, "Phase 1 Date"))
		if err != nil {
			res.addError(fmt.Sprintf("Row %d: %v", rowNum, err))
			continue
		}
		phase2, err := ParseOptionalDateCell(cell(row, idx, "Phase 2 Date"))
		if err != nil {
			res.addError(fmt.Sprintf("Row %d: %v", rowNum, err))
			continue
		}
		phase3, err := ParseOptionalDateCell(cell(row, idx, "Phase 3 Date"))
		if err != nil {
			res.addError(fmt.Sprintf("Row %d: %v", rowNum, err))
			continue
		}

		rev := review.NewEmployeeReview{
			EmployeeID: id,
			FirstName:  first,
			LastName:   last,
			Batch:      cell(row, idx, "Batch"),
			Supervisor: cell(row, idx, "Supervisor"),
			Manager:    cell(row, idx, "Manager"),
			Shift:      cell(row, idx, "Shift"),
			Department: cell(row, idx, "Department"),
			Role:       cell(row, idx, "Role"),
			HireDate:   hireDate,
			Phase1Date: phase1,
			Phase2Date: phase2,
			Phase3Date: phase3,
			AxonifyID:  OptionalString(cell(row, idx, "Axonify")),
			BOUser:     OptionalString(cell(row, idx, "BO User")),
			Notes:      reviewPendingNote,
			Status:     review.StatusPending,
		}

		seen[id] = true
		batch.Reviews = append(batch.Reviews, rev)
		res.SuccessCount++
	}

	return s.flush(ctx, batch, res)
}

func (s *service) ProcessScheduleUpload(ctx context.Context, path, mappingPath string) Result {
	rows, err := ReadWorkbook(path)
	if err != nil {
		return fatal("Error reading file: " + err.Error())
	}
	if len(rows) < 2 {
		return fatal("Error reading file: no data rows")
	}

	mapping := map[string]int64{}
	if mappingPath != "" {
		mapRows, err := ReadWorkbook(mappingPath)
		if err != nil {
			return fatal("Error reading file: " + err.Error())
		}
		mapping = BuildShortCodeMapping(mapRows)
	}

	headers, data := rows[0], rows[1:]
	idx := headerIndex(headers)
	if missing := missingColumns(idx, scheduleColumns); len(missing) > 0 {
		return fatal(fmt.Sprintf("Missing required columns: %v", missing))
	}

	directory, err := s.store.Directory(ctx)
	if err != nil {
		return fatal("Error reading employee directory: " + err.Error())
	}

	var res Result
	batch := &Batch{}
	seen := make(map[string]bool)

	for i, row := range data {
		// Some exports repeat the header as the first data row.
		if i == 0 && hasDoubledScheduleHeader(row) {
			continue
		}
		rowNum := i + 2

		token := cell(row, idx, "Employee - ID")
		employeeID, ok := ResolveEmployeeID(token, mapping, directory)
		if !ok {
			res.addError(fmt.Sprintf("Row %d: could not resolve employee identifier %q", rowNum, token))
			continue
		}

		startDate, err := ParseDateCell(cell(row, idx, "Date - Nominal Date"))
		if err != nil {
			res.addError(fmt.Sprintf("Row %d: %v", rowNum, err))
			continue
		}

		startTime, err := ParseTimeCell(cell(row, idx, "Earliest - Start"))
		if err != nil {
			res.addError(fmt.Sprintf("Row %d: %v", rowNum, err))
			continue
		}
		stopTime, err := ParseTimeCell(cell(row, idx, "Latest - Stop"))
		if err != nil {
			res.addError(fmt.Sprintf("Row %d: %v", rowNum, err))
			continue
		}

		key := fmt.Sprintf("%d|%s", employeeID, startDate.Format("2006-01-02"))
		exists, err := s.store.ScheduleExists(ctx, employeeID, startDate)
		if err != nil {
			res.addError(fmt.Sprintf("Row %d: %v", rowNum, err))
			continue
		}
		if exists || seen[key] {
			res.Duplicates = append(res.Duplicates, fmt.Sprintf(
				"Row %d: schedule for employee %d on %s already exists",
				rowNum, employeeID, startDate.Format("2006-01-02"),
			))
			continue
		}

		batch.Schedules = append(batch.Schedules, schedule.Schedule{
			EmployeeID: employeeID,
			StartDate:  startDate,
			StartTime:  startTime,
			StopDate:   schedule.StopDate(startDate, startTime, stopTime),
			StopTime:   stopTime,
			WorkCode:   OptionalString(cell(row, idx, "Work - Code")),
		})
		seen[key] = true
		res.SuccessCount++
	}

	res = s.flush(ctx, batch, res)

	s.logger.Info("schedule upload processed",
		zap.String("path", path),
		zap.Int("success", res.SuccessCount),
		zap.Int("errors", res.ErrorCount),
		zap.Int("duplicates", len(res.Duplicates)),
	)
	return res
}

func (s *service) ProcessAttendanceUpload(ctx context.Context, path string) Result {
	rows, err := ReadWorkbook(path)
	if err != nil {
		return fatal("Error reading file: " + err.Error())
	}
	if len(rows) < 2 {
		return fatal("Error reading file: no data rows")
	}

	headers, data := rows[0], rows[1:]
	idx := headerIndex(headers)
	if missing := missingColumns(idx, attendanceColumns); len(missing) > 0 {
		return fatal(fmt.Sprintf("Missing required columns: %v", missing))
	}

	directory, err := s.store.Directory(ctx)
	if err != nil {
		return fatal("Error reading employee directory: " + err.Error())
	}

	var res Result
	batch := &Batch{}
	seen := make(map[string]bool)

	for i, row := range data {
		rowNum := i + 2

		token := cell(row, idx, "Employee - ID")
		employeeID, ok := ResolveEmployeeID(token, nil, directory)
		if !ok {
			res.addError(fmt.Sprintf("Row %d: could not resolve employee identifier %q", rowNum, token))
			continue
		}

		date, err := ParseDateCell(cell(row, idx, "Date"))
		if err != nil {
			res.addError(fmt.Sprintf("Row %d: %v", rowNum, err))
			continue
		}

		checkIn, err := ParseTimeCell(cell(row, idx, "Check In"))
		if err != nil {
			res.addError(fmt.Sprintf("Row %d: %v", rowNum, err))
			continue
		}
		if checkIn == nil {
			res.addError(fmt.Sprintf("Row %d: Check In is required", rowNum))
			continue
		}
		checkOut, err := ParseTimeCell(cell(row, idx, "Check Out"))
		if err != nil {
			res.addError(fmt.Sprintf("Row %d: %v", rowNum, err))
			continue
		}

		key := fmt.Sprintf("%d|%s", employeeID, date.Format("2006-01-02"))
		exists, err := s.store.AttendanceExists(ctx, employeeID, date)
		if err != nil {
			res.addError(fmt.Sprintf("Row %d: %v", rowNum, err))
			continue
		}
		if exists || seen[key] {
			res.addError(fmt.Sprintf(
				"Row %d: attendance for employee %d on %s already recorded",
				rowNum, employeeID, date.Format("2006-01-02"),
			))
			continue
		}

		batch.Attendances = append(batch.Attendances, attendance.Attendance{
			EmployeeID:    employeeID,
			Date:          date,
			CheckIn:       checkIn,
			CheckOut:      checkOut,
			ExceptionType: OptionalString(cell(row, idx, "Exception")),
			Notes:         cell(row, idx, "Notes"),
		})
		seen[key] = true
		res.SuccessCount++
	}

	res = s.flush(ctx, batch, res)

	s.logger.Info("attendance upload processed",
		zap.String("path", path),
		zap.Int("success", res.SuccessCount),
		zap.Int("errors", res.ErrorCount),
	)
	return res
}

func (s *service) ProcessExceptionUpload(ctx context.Context, path string) Result {
	rows, err := ReadWorkbook(path)
	if err != nil {
		return fatal("Error reading file: " + err.Error())
	}
	if len(rows) < 2 {
		return fatal("Error reading file: no data rows")
	}

	headers, data := rows[0], rows[1:]
	idx := headerIndex(headers)
	if missing := missingColumns(idx, exceptionColumns); len(missing) > 0 {
		return fatal(fmt.Sprintf("Missing required columns: %v", missing))
	}

	var res Result
	batch := &Batch{}

	for i, row := range data {
		rowNum := i + 2

		employeeID, err := ParseIntCell(cell(row, idx, "Employee - ID"))
		if err != nil {
			res.addError(fmt.Sprintf("Row %d: invalid employee ID: %v", rowNum, err))
			continue
		}

		excType := cell(row, idx, "Exception Type")
		if excType == "" {
			res.addError(fmt.Sprintf("Row %d: Exception Type is required", rowNum))
			continue
		}

		startDate, err := ParseDateCell(cell(row, idx, "Start Date"))
		if err != nil {
			res.addError(fmt.Sprintf("Row %d: %v", rowNum, err))
			continue
		}
		endDate, err := ParseDateCell(cell(row, idx, "End Date"))
		if err != nil {
			res.addError(fmt.Sprintf("Row %d: %v", rowNum, err))
			continue
		}
		if endDate.Before(startDate) {
			res.addError(fmt.Sprintf("Row %d: end date is before start date", rowNum))
			continue
		}

		batch.Exceptions = append(batch.Exceptions, exception.ExceptionRecord{
			EmployeeID:         employeeID,
			Type:               excType,
			StartDate:          startDate,
			EndDate:            endDate,
			WorkCode:           OptionalString(cell(row, idx, "Work Code")),
			SupervisorOverride: OptionalString(cell(row, idx, "Supervisor Override")),
			Notes:              cell(row, idx, "Notes"),
			Status:             exception.StatusPending,
		})
		res.SuccessCount++
	}

	res = s.flush(ctx, batch, res)

	s.logger.Info("exception upload processed",
		zap.String("path", path),
		zap.Int("success", res.SuccessCount),
		zap.Int("errors", res.ErrorCount),
	)
	return res
}

func (s *service) ProcessRewardUpload(ctx context.Context, path string) Result {
	rows, err := ReadWorkbook(path)
	if err != nil {
		return fatal("Error reading file: " + err.Error())
	}
	if len(rows) < 2 {
		return fatal("Error reading file: no data rows")
	}

	headers, data := rows[0], rows[1:]
	idx := headerIndex(headers)
	if missing := missingColumns(idx, rewardColumns); len(missing) > 0 {
		return fatal(fmt.Sprintf("Missing required columns: %v", missing))
	}

	var res Result
	batch := &Batch{}

	for i, row := range data {
		rowNum := i + 2

		employeeID, err := ParseIntCell(cell(row, idx, "Employee - ID"))
		if err != nil {
			res.addError(fmt.Sprintf("Row %d: invalid employee ID: %v", rowNum, err))
			continue
		}
		exists, err := s.store.EmployeeExists(ctx, employeeID)
		if err != nil {
			res.addError(fmt.Sprintf("Row %d: %v", rowNum, err))
			continue
		}
		if !exists {
			res.addError(fmt.Sprintf("Row %d: employee %d not found", rowNum, employeeID))
			continue
		}

		reasonID, err := ParseIntCell(cell(row, idx, "Reason ID"))
		if err != nil {
			res.addError(fmt.Sprintf("Row %d: invalid reason ID: %v", rowNum, err))
			continue
		}
		_, active, found, err := s.store.Reason(ctx, reasonID)
		if err != nil {
			res.addError(fmt.Sprintf("Row %d: %v", rowNum, err))
			continue
		}
		if !found {
			res.addError(fmt.Sprintf("Row %d: reward reason %d not found", rowNum, reasonID))
			continue
		}
		if !active {
			res.addError(fmt.Sprintf("Row %d: reward reason %d is inactive", rowNum, reasonID))
			continue
		}

		points, err := ParseIntCell(cell(row, idx, "Points"))
		if err != nil {
			res.addError(fmt.Sprintf("Row %d: invalid points: %v", rowNum, err))
			continue
		}

		dateAwarded, err := ParseDateCell(cell(row, idx, "Date Awarded"))
		if err != nil {
			res.addError(fmt.Sprintf("Row %d: %v", rowNum, err))
			continue
		}

		batch.Rewards = append(batch.Rewards, reward.EmployeeReward{
			EmployeeID:  employeeID,
			ReasonID:    reasonID,
			Points:      int(points),
			DateAwarded: dateAwarded,
			Notes:       cell(row, idx, "Notes"),
		})
		res.SuccessCount++
	}

	res = s.flush(ctx, batch, res)

	s.logger.Info("reward upload processed",
		zap.String("path", path),
		zap.Int("success", res.SuccessCount),
		zap.Int("errors", res.ErrorCount),
	)
	return res
}

// flush commits the staged batch. A commit failure voids every staged
// row: the result reports zero successes plus one aggregate error.
func (s *service) flush(ctx context.Context, batch *Batch, res Result) Result {
	if err := s.store.Flush(ctx, batch); err != nil {
		s.logger.Error("upload batch commit failed", zap.Error(err))
		res.SuccessCount = 0
		res.addError("Error saving batch: " + err.Error())
	}
	return res
}
