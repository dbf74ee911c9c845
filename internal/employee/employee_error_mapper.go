package employee

import (
	"errors"

	employeeerrors "go-calypso/internal/employee/errors"
	"go-calypso/internal/shared/database"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}
	if database.IsUniqueViolation(err, "uq_employee_identification") {
		return employeeerrors.ErrIdentificationExists
	}
	return err
}
