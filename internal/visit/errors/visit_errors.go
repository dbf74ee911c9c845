package visiterrors

import (
	"net/http"

	"go-calypso/internal/shared/apperror"
)

var (
	ErrVisitNotFound = apperror.New(
		apperror.CodeNotFound,
		"Visit not found",
		http.StatusNotFound,
	)
	ErrHostNotFound = apperror.New(
		apperror.CodeNotFound,
		"Host employee not found",
		http.StatusNotFound,
	)
	ErrBranchNotFound = apperror.New(
		apperror.CodeNotFound,
		"Branch not found",
		http.StatusNotFound,
	)
	ErrVisitNotPending = apperror.New(
		apperror.CodeInvalidState,
		"Visit is not pending approval",
		http.StatusConflict,
	)
	ErrVisitAlreadyExited = apperror.New(
		apperror.CodeConflict,
		"Visit exit was already registered",
		http.StatusConflict,
	)
	ErrVisitNotActive = apperror.New(
		apperror.CodeInvalidState,
		"Visit is not active",
		http.StatusConflict,
	)
	ErrInvalidVisitID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid visit ID",
		http.StatusBadRequest,
	)
	ErrInvalidHostID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid host ID",
		http.StatusBadRequest,
	)
	ErrInvalidBranchID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid branch ID",
		http.StatusBadRequest,
	)
	ErrInvalidBirthDate = apperror.New(
		apperror.CodeInvalidInput,
		"Birth date must be a past date formatted YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidEstado = apperror.New(
		apperror.CodeInvalidInput,
		"Unknown visit state filter",
		http.StatusBadRequest,
	)
	ErrInvalidDateFilter = apperror.New(
		apperror.CodeInvalidInput,
		"Date filters must be formatted YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"The from date must not be after the to date",
		http.StatusBadRequest,
	)
)
