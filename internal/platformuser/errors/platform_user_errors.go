package platformusererrors

import (
	"net/http"

	"go-calypso/internal/shared/apperror"
)

var (
	ErrPlatformUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"Platform user not found",
		http.StatusNotFound,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrEmployeeAlreadyPlatformUser = apperror.New(
		apperror.CodeConflict,
		"Employee already has a platform user",
		http.StatusConflict,
	)
	ErrLastPrimaryAdmin = apperror.New(
		apperror.CodeConflict,
		"The last active primary administrator cannot be removed, deactivated or demoted",
		http.StatusConflict,
	)
	ErrInvalidPlatformUserID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid platform user ID",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrInvalidRole = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid role",
		http.StatusBadRequest,
	)
	ErrWrongPassword = apperror.New(
		apperror.CodeInvalidInput,
		"Current password is incorrect",
		http.StatusBadRequest,
	)
	ErrPasswordChangeForbidden = apperror.New(
		apperror.CodeForbidden,
		"You can only change your own password",
		http.StatusForbidden,
	)
)
