package autherrors

import (
	"net/http"

	"go-calypso/internal/shared/apperror"
)

var (
	ErrInvalidCredentials = apperror.New(
		"AUTH_FAILED",
		"Identification or password is incorrect",
		http.StatusUnauthorized,
	)
	ErrUserInactive = apperror.New(
		apperror.CodeForbidden,
		"User is inactive",
		http.StatusForbidden,
	)
	ErrUserNotFound = apperror.New(
		apperror.CodeUnauthorized,
		"User no longer exists",
		http.StatusUnauthorized,
	)
	ErrTokenGenerationFailed = apperror.New(
		apperror.CodeInternalError,
		"Could not issue access token",
		http.StatusInternalServerError,
	)
)
