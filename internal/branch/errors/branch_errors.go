package brancherrors

import (
	"net/http"

	"go-calypso/internal/shared/apperror"
)

var (
	ErrBranchNotFound = apperror.New(
		apperror.CodeNotFound,
		"Branch not found",
		http.StatusNotFound,
	)
	ErrBranchNameExists = apperror.New(
		apperror.CodeConflict,
		"A branch with the same name already exists",
		http.StatusConflict,
	)
	ErrBranchInUse = apperror.New(
		apperror.CodeConflict,
		"Branch cannot be deleted while employees are assigned to it",
		http.StatusConflict,
	)
	ErrInvalidBranchID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid branch ID",
		http.StatusBadRequest,
	)
)
