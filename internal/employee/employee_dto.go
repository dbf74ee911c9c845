package employee

type CreateEmployeeRequest struct {
	Identification string `json:"identification" binding:"required,docnumber"`
	FullName       string `json:"fullName" binding:"required,person_name"`
	JobTitle       string `json:"jobTitle" binding:"required,max=120"`
	BranchID       string `json:"branchId" binding:"required,uuid"`
}

type UpdateEmployeeRequest struct {
	Identification string `json:"identification" binding:"required,docnumber"`
	FullName       string `json:"fullName" binding:"required,person_name"`
	JobTitle       string `json:"jobTitle" binding:"required,max=120"`
	BranchID       string `json:"branchId" binding:"required,uuid"`
}

type EmployeeResponse struct {
	ID             string `json:"id"`
	Identification string `json:"identification"`
	FullName       string `json:"fullName"`
	JobTitle       string `json:"jobTitle"`
	BranchID       string `json:"branchId"`
	CreatedAt      string `json:"createdAt"`
	UpdatedAt      string `json:"updatedAt"`
}

type ImportRowError struct {
	Row            int    `json:"row"`
	Identification string `json:"identification"`
	Error          string `json:"error"`
}

type ImportResult struct {
	Message      string           `json:"message"`
	SuccessCount int              `json:"successCount"`
	ErrorCount   int              `json:"errorCount"`
	Errors       []ImportRowError `json:"errors"`
}
