package employee

type CreateEmployeeRequest struct {
	ID           int64   `json:"id" binding:"required"`
	FirstName    string  `json:"first_name" binding:"required"`
	LastName     string  `json:"last_name" binding:"required"`
	CompanyEmail string  `json:"company_email" binding:"omitempty,email"`
	Batch        string  `json:"batch"`
	AgentID      *int64  `json:"agent_id"`
	RuexID       *string `json:"ruex_id"`
	AxonifyID    *string `json:"axonify_id"`
	BOUser       *string `json:"bo_user"`
	Supervisor   string  `json:"supervisor"`
	Manager      string  `json:"manager"`
	Tier         *int    `json:"tier"`
	Shift        string  `json:"shift"`
	Department   string  `json:"department"`
	Role         string  `json:"role"`
	HireDate     string  `json:"hire_date"`
	Status       string  `json:"status" binding:"omitempty,oneof=Active Inactive 'On Leave'"`
}

type UpdateEmployeeRequest struct {
	FirstName     string  `json:"first_name" binding:"required"`
	LastName      string  `json:"last_name" binding:"required"`
	CompanyEmail  string  `json:"company_email" binding:"omitempty,email"`
	Batch         string  `json:"batch"`
	AgentID       *int64  `json:"agent_id"`
	RuexID        *string `json:"ruex_id"`
	AxonifyID     *string `json:"axonify_id"`
	BOUser        *string `json:"bo_user"`
	Supervisor    string  `json:"supervisor"`
	Manager       string  `json:"manager"`
	Tier          *int    `json:"tier"`
	Shift         string  `json:"shift"`
	Department    string  `json:"department"`
	Role          string  `json:"role"`
	HireDate      string  `json:"hire_date"`
	Status        string  `json:"status" binding:"omitempty,oneof=Active Inactive 'On Leave'"`
	AttritionDate string  `json:"attrition_date"`
}

type EmployeeResponse struct {
	ID            int64   `json:"id"`
	FirstName     string  `json:"first_name"`
	LastName      string  `json:"last_name"`
	FullName      string  `json:"full_name"`
	CompanyEmail  string  `json:"company_email,omitempty"`
	Batch         string  `json:"batch,omitempty"`
	AgentID       *int64  `json:"agent_id,omitempty"`
	RuexID        *string `json:"ruex_id,omitempty"`
	AxonifyID     *string `json:"axonify_id,omitempty"`
	BOUser        *string `json:"bo_user,omitempty"`
	Supervisor    string  `json:"supervisor,omitempty"`
	Manager       string  `json:"manager,omitempty"`
	Tier          *int    `json:"tier,omitempty"`
	Shift         string  `json:"shift,omitempty"`
	Department    string  `json:"department,omitempty"`
	Role          string  `json:"role,omitempty"`
	HireDate      string  `json:"hire_date,omitempty"`
	Status        string  `json:"status"`
	AttritionDate string  `json:"attrition_date,omitempty"`
	PointBalance  int     `json:"point_balance"`
}
