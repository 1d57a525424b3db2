package upload

import "strings"

// EmployeeFormat discriminates the known roster layouts.
type EmployeeFormat int

const (
	// FormatLegacyRoster is the trusted export whose rows become live
	// Employee records directly.
	FormatLegacyRoster EmployeeFormat = iota
	// FormatNewRoster is the untrusted variant whose rows are staged
	// as NewEmployeeReview entries.
	FormatNewRoster
)

// Column sets per entity. These are the exact header names operators
// must produce.
var (
	legacyRosterColumns = []string{
		"Odoo ID", "First Name", "Last Name", "Batch", "Supervisor",
		"Manager", "Shift", "Department", "Role", "Hire Date", "Company Email",
	}
	newRosterColumns = []string{
		"#", "Name", "Last Name", "First Name", "Batch", "Supervisor",
		"Manager", "Shift", "Department", "Role", "Hire Date",
	}
	scheduleColumns = []string{
		"Employee - ID", "Date - Nominal Date", "Earliest - Start",
		"Latest - Stop", "Work - Code",
	}
	attendanceColumns = []string{"Employee - ID", "Date", "Check In"}
	exceptionColumns  = []string{"Employee - ID", "Exception Type", "Start Date", "End Date"}
	rewardColumns     = []string{"Employee - ID", "Reason ID", "Points", "Date Awarded"}
)

// DetectEmployeeFormat classifies a roster header row. The new-roster
// variant is marked by a literal "Name" column next to a "#" row-index
// column.
func DetectEmployeeFormat(headers []string) EmployeeFormat {
	idx := headerIndex(headers)
	if _, hasName := idx["Name"]; hasName {
		if _, hasIndex := idx["#"]; hasIndex {
			return FormatNewRoster
		}
	}
	return FormatLegacyRoster
}

// hasDoubledScheduleHeader reports whether the first data row of a
// schedule file is a repeated header, a variant some exports produce.
func hasDoubledScheduleHeader(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) == "Employee - ID" {
			return true
		}
	}
	return false
}
