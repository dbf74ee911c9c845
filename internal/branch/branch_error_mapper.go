package branch

import (
	"errors"

	brancherrors "go-calypso/internal/branch/errors"
	"go-calypso/internal/shared/database"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return brancherrors.ErrBranchNotFound
	}
	if database.IsUniqueViolation(err, "uq_branch_name") {
		return brancherrors.ErrBranchNameExists
	}
	if database.IsForeignKeyViolation(err) {
		return brancherrors.ErrBranchInUse
	}
	return err
}
