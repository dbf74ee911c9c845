package auth

type LoginRequest struct {
	Identification string `json:"identification" binding:"required,max=30"`
	Password       string `json:"password" binding:"required,max=72"`
}

type AuthResponse struct {
	ID                    string `json:"id"`
	EmployeeID            string `json:"employeeId"`
	FullName              string `json:"fullName"`
	Identification        string `json:"identification"`
	Role                  string `json:"role"`
	CanManageAutoregister bool   `json:"canManageAutoregister"`
}

type LoginResponse struct {
	User        AuthResponse `json:"user"`
	AccessToken string       `json:"accessToken"`
	ExpiresIn   int64        `json:"expiresIn"`
}
