package employee

import (
	"time"

	"github.com/google/uuid"
)

type Employee struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Identification string    `gorm:"size:30;not null;uniqueIndex:uq_employee_identification"`
	FullName       string    `gorm:"size:150;not null"`
	JobTitle       string    `gorm:"size:120;not null"`
	BranchID       uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

func (Employee) TableName() string {
	return "employees"
}
