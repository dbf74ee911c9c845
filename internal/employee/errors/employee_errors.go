package employeeerrors

import (
	"net/http"

	"go-calypso/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrIdentificationExists = apperror.New(
		apperror.CodeConflict,
		"An employee with the same identification already exists",
		http.StatusConflict,
	)
	ErrEmployeeIsHost = apperror.New(
		apperror.CodeConflict,
		"Employee cannot be deleted while referenced as a visit host",
		http.StatusConflict,
	)
	ErrEmployeeIsPlatformUser = apperror.New(
		apperror.CodeConflict,
		"Employee cannot be deleted while it has a platform user",
		http.StatusConflict,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrInvalidBranchID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid branch ID",
		http.StatusBadRequest,
	)
	ErrBranchNotFound = apperror.New(
		apperror.CodeNotFound,
		"Branch not found",
		http.StatusNotFound,
	)
	ErrImportFileMissing = apperror.New(
		apperror.CodeInvalidInput,
		"A CSV file is required in the file field",
		http.StatusBadRequest,
	)
	ErrImportFileInvalid = apperror.New(
		apperror.CodeInvalidInput,
		"The file is not a valid CSV document",
		http.StatusBadRequest,
	)
	ErrImportFileEmpty = apperror.New(
		apperror.CodeInvalidInput,
		"The file has no data rows",
		http.StatusBadRequest,
	)
)

// MissingColumns reports the header columns the import could not find.
func MissingColumns(cols []string) error {
	return apperror.New(
		apperror.CodeInvalidInput,
		"The file header is missing required columns",
		http.StatusBadRequest,
	).WithDetails(map[string][]string{"missing": cols})
}
