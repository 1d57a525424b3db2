package review

type ApproveRequest struct {
	ReviewerID string `json:"reviewer_id" binding:"required"`
}

type RejectRequest struct {
	ReviewerID string `json:"reviewer_id" binding:"required"`
	Notes      string `json:"notes" binding:"required"`
}

type ReviewResponse struct {
	ID         int64   `json:"id"`
	EmployeeID int64   `json:"employee_id"`
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	Batch      string  `json:"batch,omitempty"`
	Supervisor string  `json:"supervisor,omitempty"`
	Manager    string  `json:"manager,omitempty"`
	Shift      string  `json:"shift,omitempty"`
	Department string  `json:"department,omitempty"`
	Role       string  `json:"role,omitempty"`
	HireDate   string  `json:"hire_date,omitempty"`
	Notes      string  `json:"notes,omitempty"`
	Status     string  `json:"status"`
	ReviewedBy *string `json:"reviewed_by,omitempty"`
	ReviewedAt string  `json:"reviewed_at,omitempty"`
}

type ApproveResponse struct {
	Review     ReviewResponse `json:"review"`
	EmployeeID int64          `json:"employee_id"`
	Email      string         `json:"email"`
}
