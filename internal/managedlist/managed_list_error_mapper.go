package managedlist

import (
	"errors"

	managedlisterrors "go-calypso/internal/managedlist/errors"
	"go-calypso/internal/shared/database"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return managedlisterrors.ErrItemNotFound
	}
	if database.IsUniqueViolation(err, "uq_managed_list_type_value", ValueFoldIndex) {
		return managedlisterrors.ErrItemValueExists
	}
	return err
}
