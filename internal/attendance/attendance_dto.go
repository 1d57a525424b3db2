package attendance

// MarkRequest is the manual attendance-tracker form payload. Status
// drives which exception tag (if any) lands on the stored row.
type MarkRequest struct {
	EmployeeID      int64   `json:"employee_id" binding:"required"`
	Date            string  `json:"date" binding:"required"`
	Status          string  `json:"status" binding:"required,oneof=present late absent early_leave overtime cover_up on_leave"`
	CheckIn         *string `json:"check_in"`
	CheckOut        *string `json:"check_out"`
	LateMinutes     int     `json:"late_minutes"`
	OvertimeMinutes int     `json:"overtime_minutes"`
	CoverUpForID    *int64  `json:"cover_up_for_id"`
	Notes           string  `json:"notes"`
}

type AttendanceResponse struct {
	ID              int64   `json:"id"`
	EmployeeID      int64   `json:"employee_id"`
	Date            string  `json:"date"`
	CheckIn         *string `json:"check_in"`
	CheckOut        *string `json:"check_out"`
	ExceptionType   *string `json:"exception_type"`
	LateMinutes     int     `json:"late_minutes,omitempty"`
	OvertimeMinutes int     `json:"overtime_minutes,omitempty"`
	EarlyLeave      bool    `json:"early_leave,omitempty"`
	CoverUpForID    *int64  `json:"cover_up_for_id,omitempty"`
	Notes           string  `json:"notes,omitempty"`
}

type DailyReportResponse struct {
	Date    string               `json:"date"`
	Total   int                  `json:"total"`
	Marked  []AttendanceResponse `json:"marked"`
	Summary map[string]int       `json:"summary"`
}
