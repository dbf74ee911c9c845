package branch

import (
	"time"

	"github.com/google/uuid"
)

type Branch struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"size:120;not null;uniqueIndex:uq_branch_name"`
	Address   string    `gorm:"size:255"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Branch) TableName() string {
	return "branches"
}
