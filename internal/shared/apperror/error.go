package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type AppError struct {
	Code       string // machine readable, e.g. INVALID_INPUT
	Message    string // safe to show to clients
	HTTPStatus int
	Details    any   // optional structured payload (field list, conflicting id)
	Err        error // wrapped cause, never serialised
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches on code and status so wrapped copies of a sentinel still compare equal.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.HTTPStatus == t.HTTPStatus && e.Message == t.Message
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

func Wrap(err error, code, message string, httpStatus int) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// WithDetails returns a copy carrying details, leaving the sentinel untouched.
func (e *AppError) WithDetails(details any) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

// HTTPError is the transport view of an error.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details any
}

// ToHTTP converts any error into its HTTP representation. Errors that are
// not AppErrors are reported as a generic 500 so internals never leak.
func ToHTTP(err error) HTTPError {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr != nil {
		status := appErr.HTTPStatus
		if status == 0 {
			status = http.StatusInternalServerError
		}
		return HTTPError{
			Status:  status,
			Code:    appErr.Code,
			Message: appErr.Message,
			Details: appErr.Details,
		}
	}
	return HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    ErrInternal.Code,
		Message: ErrInternal.Message,
	}
}
