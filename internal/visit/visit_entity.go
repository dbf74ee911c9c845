package visit

import (
	"time"

	"github.com/google/uuid"
)

// Estado values are stored verbatim.
const (
	EstadoPendiente  = "PENDIENTE_APROBACION"
	EstadoActiva     = "activa"
	EstadoFinalizada = "finalizada"
)

// Visit is one check-in of a visitor at a branch. HostID stays nil while
// the visit waits for approval; ExitTime is set exactly when the visit is
// finalizada.
type Visit struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	DocumentType   string    `gorm:"size:40;not null"`
	DocumentNumber string    `gorm:"size:20;not null;index"`
	FirstNames     string    `gorm:"size:100;not null"`
	LastNames      string    `gorm:"size:100;not null"`
	BirthDate      time.Time `gorm:"type:date;not null"`
	Gender         string    `gorm:"size:40;not null"`
	BloodType      string    `gorm:"size:10;not null"`
	Phone          string    `gorm:"size:20;not null"`

	Purpose   string     `gorm:"size:500;not null"`
	Category  string     `gorm:"size:100"`
	VisitType string     `gorm:"size:60;not null"`
	HostID    *uuid.UUID `gorm:"type:uuid;index"`
	BranchID  uuid.UUID  `gorm:"type:uuid;not null;index"`

	OriginCompany *string `gorm:"size:150"`
	BadgeNumber   *string `gorm:"size:30"`
	VehiclePlate  *string `gorm:"size:10"`

	EPS string `gorm:"column:eps;size:100;not null"`
	ARL string `gorm:"column:arl;size:100;not null"`

	EmergencyContactName    string `gorm:"size:100;not null"`
	EmergencyContactPhone   string `gorm:"size:20;not null"`
	EmergencyContactKinship string `gorm:"size:40;not null"`

	PhotoPath *string `gorm:"size:255"`

	Estado    string     `gorm:"size:30;not null;index"`
	EntryTime time.Time  `gorm:"not null;index"`
	ExitTime  *time.Time
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Visit) TableName() string {
	return "visits"
}

func (v Visit) VisitorName() string {
	return v.FirstNames + " " + v.LastNames
}
