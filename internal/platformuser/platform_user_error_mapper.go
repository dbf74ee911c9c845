package platformuser

import (
	"errors"

	platformusererrors "go-calypso/internal/platformuser/errors"
	"go-calypso/internal/shared/database"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return platformusererrors.ErrPlatformUserNotFound
	}
	if database.IsUniqueViolation(err, "uq_platform_user_employee") {
		return platformusererrors.ErrEmployeeAlreadyPlatformUser
	}
	if database.IsForeignKeyViolation(err) {
		return platformusererrors.ErrEmployeeNotFound
	}
	return err
}
