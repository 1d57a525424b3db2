package exception

type CreateExceptionRequest struct {
	EmployeeID         int64   `json:"employee_id" binding:"required"`
	Type               string  `json:"type" binding:"required"`
	StartDate          string  `json:"start_date" binding:"required"`
	EndDate            string  `json:"end_date" binding:"required"`
	WorkCode           *string `json:"work_code"`
	SupervisorOverride *string `json:"supervisor_override"`
	Notes              string  `json:"notes"`
}

type ProcessExceptionRequest struct {
	ProcessorID string `json:"processor_id" binding:"required"`
}

type ExceptionResponse struct {
	ID                 int64   `json:"id"`
	EmployeeID         int64   `json:"employee_id"`
	Type               string  `json:"type"`
	StartDate          string  `json:"start_date"`
	EndDate            string  `json:"end_date"`
	WorkCode           *string `json:"work_code"`
	SupervisorOverride *string `json:"supervisor_override"`
	Notes              string  `json:"notes,omitempty"`
	Status             string  `json:"status"`
	ProcessedBy        *string `json:"processed_by,omitempty"`
	ProcessedAt        *string `json:"processed_at,omitempty"`
}

type ProcessResultResponse struct {
	ExceptionID        int64 `json:"exception_id"`
	SchedulesCreated   int   `json:"schedules_created"`
	AttendancesCreated int   `json:"attendances_created"`
}
