package platformuser

type CreatePlatformUserRequest struct {
	EmployeeID            string `json:"employeeId" binding:"required,uuid"`
	Role                  string `json:"role" binding:"required,oneof=PRIMARY_ADMIN ADMIN STANDARD"`
	Password              string `json:"password" binding:"required,min=8,max=72"`
	CanManageAutoregister *bool  `json:"canManageAutoregister"`
}

// UpdatePlatformUserRequest changes only the fields that are present.
type UpdatePlatformUserRequest struct {
	Role                  *string `json:"role" binding:"omitempty,oneof=PRIMARY_ADMIN ADMIN STANDARD"`
	IsActive              *bool   `json:"isActive"`
	CanManageAutoregister *bool   `json:"canManageAutoregister"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"max=72"`
	NewPassword     string `json:"newPassword" binding:"required,min=8,max=72"`
}

type PlatformUserResponse struct {
	ID                    string `json:"id"`
	EmployeeID            string `json:"employeeId"`
	FullName              string `json:"fullName,omitempty"`
	Identification        string `json:"identification,omitempty"`
	Role                  string `json:"role"`
	CanManageAutoregister bool   `json:"canManageAutoregister"`
	IsActive              bool   `json:"isActive"`
	CreatedAt             string `json:"createdAt"`
	UpdatedAt             string `json:"updatedAt"`
}
