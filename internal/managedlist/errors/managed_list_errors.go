package managedlisterrors

import (
	"net/http"

	"go-calypso/internal/shared/apperror"
)

var (
	ErrItemNotFound = apperror.New(
		apperror.CodeNotFound,
		"List item not found",
		http.StatusNotFound,
	)
	ErrItemValueExists = apperror.New(
		apperror.CodeConflict,
		"The list already contains this value",
		http.StatusConflict,
	)
	ErrInvalidListType = apperror.New(
		apperror.CodeInvalidInput,
		"Unknown list type",
		http.StatusBadRequest,
	)
	ErrEmptyValue = apperror.New(
		apperror.CodeInvalidInput,
		"Value must not be blank",
		http.StatusBadRequest,
	)
	ErrInvalidItemID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid list item ID",
		http.StatusBadRequest,
	)
)
