package schedule

type CreateScheduleRequest struct {
	EmployeeID int64   `json:"employee_id" binding:"required"`
	StartDate  string  `json:"start_date" binding:"required"`
	StartTime  *string `json:"start_time"`
	StopTime   *string `json:"stop_time"`
	WorkCode   *string `json:"work_code"`
}

type UpdateScheduleRequest struct {
	StartDate string  `json:"start_date" binding:"required"`
	StartTime *string `json:"start_time"`
	StopTime  *string `json:"stop_time"`
	WorkCode  *string `json:"work_code"`
}

type ScheduleResponse struct {
	ID         int64   `json:"id"`
	EmployeeID int64   `json:"employee_id"`
	StartDate  string  `json:"start_date"`
	StartTime  *string `json:"start_time"`
	StopDate   string  `json:"stop_date"`
	StopTime   *string `json:"stop_time"`
	WorkCode   *string `json:"work_code"`
	Off        bool    `json:"off"`
}
