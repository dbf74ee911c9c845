package platformuser

import (
	"time"

	"go-calypso/internal/domain"

	"github.com/google/uuid"
)

type PlatformUser struct {
	ID                    uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	EmployeeID            uuid.UUID `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:uq_platform_user_employee"`
	Role                  string    `gorm:"column:role;type:varchar(20);not null"`
	PasswordHash          string    `gorm:"column:password_hash;type:text;not null"`
	CanManageAutoregister bool      `gorm:"column:can_manage_autoregister;not null"`
	IsActive              bool      `gorm:"column:is_active;not null"`
	CreatedAt             time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt             time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (PlatformUser) TableName() string {
	return "platform_users"
}

func (u PlatformUser) RoleValue() domain.Role {
	return domain.Role(u.Role)
}

// PlatformUserView joins the owning employee's identity.
type PlatformUserView struct {
	PlatformUser   `gorm:"embedded"`
	FullName       string `gorm:"column:full_name"`
	Identification string `gorm:"column:identification"`
}
