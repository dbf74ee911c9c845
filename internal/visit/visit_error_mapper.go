package visit

import (
	"errors"

	"go-calypso/internal/shared/database"
	visiterrors "go-calypso/internal/visit/errors"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return visiterrors.ErrVisitNotFound
	}
	if database.IsForeignKeyViolation(err) {
		return visiterrors.ErrBranchNotFound
	}
	return err
}
