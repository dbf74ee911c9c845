package managedlist

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListType names one dropdown feeding the intake forms.
type ListType string

const (
	ListDocumentType ListType = "document_type"
	ListGender       ListType = "gender"
	ListBloodType    ListType = "blood_type"
	ListVisitType    ListType = "visit_type"
	ListEPS          ListType = "eps"
	ListARL          ListType = "arl"
	ListKinship      ListType = "kinship"
)

var ListTypes = []ListType{
	ListDocumentType,
	ListGender,
	ListBloodType,
	ListVisitType,
	ListEPS,
	ListARL,
	ListKinship,
}

func ParseListType(s string) (ListType, bool) {
	lt := ListType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range ListTypes {
		if lt == known {
			return lt, true
		}
	}
	return "", false
}

type ManagedListItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ListType  string    `gorm:"size:40;not null;uniqueIndex:uq_managed_list_type_value"`
	Value     string    `gorm:"size:120;not null;uniqueIndex:uq_managed_list_type_value"`
	SortOrder int       `gorm:"not null;default:0"`
	IsActive  bool      `gorm:"not null;default:true"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (ManagedListItem) TableName() string {
	return "managed_list_items"
}

// ValueFoldIndex makes values unique per list regardless of letter case.
const ValueFoldIndex = "uq_managed_list_type_lower_value"

// EnsureIndexes creates the indexes gorm tags cannot express.
func EnsureIndexes(db *gorm.DB) error {
	return db.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS " + ValueFoldIndex +
			" ON managed_list_items (list_type, LOWER(value))",
	).Error
}
