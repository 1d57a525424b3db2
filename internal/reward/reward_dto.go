package reward

type CreateReasonRequest struct {
	Label  string `json:"label" binding:"required"`
	Points int    `json:"points" binding:"required,gt=0"`
}

type UpdateReasonRequest struct {
	Label    string `json:"label" binding:"required"`
	Points   int    `json:"points" binding:"required,gt=0"`
	IsActive *bool  `json:"is_active" binding:"required"`
}

type AwardRequest struct {
	EmployeeID  int64  `json:"employee_id" binding:"required"`
	ReasonID    int64  `json:"reason_id" binding:"required"`
	DateAwarded string `json:"date_awarded"`
	Notes       string `json:"notes"`
}

type RedeemRequest struct {
	EmployeeID int64  `json:"employee_id" binding:"required"`
	Points     int    `json:"points" binding:"required,gt=0"`
	Type       string `json:"type" binding:"required"`
	ApprovedBy string `json:"approved_by"`
}

type ReasonResponse struct {
	ID       int64  `json:"id"`
	Label    string `json:"label"`
	Points   int    `json:"points"`
	IsActive bool   `json:"is_active"`
}

type AwardResponse struct {
	ID          int64  `json:"id"`
	EmployeeID  int64  `json:"employee_id"`
	ReasonID    int64  `json:"reason_id"`
	Points      int    `json:"points"`
	DateAwarded string `json:"date_awarded"`
	Notes       string `json:"notes,omitempty"`
	NewBalance  int    `json:"new_balance"`
}

type RedemptionResponse struct {
	ID         int64  `json:"id"`
	EmployeeID int64  `json:"employee_id"`
	Points     int    `json:"points"`
	Type       string `json:"type"`
	ApprovedBy string `json:"approved_by,omitempty"`
	NewBalance int    `json:"new_balance"`
}

type BalanceResponse struct {
	EmployeeID  int64                `json:"employee_id"`
	Balance     int                  `json:"balance"`
	Awards      []AwardResponse      `json:"awards"`
	Redemptions []RedemptionResponse `json:"redemptions"`
}
