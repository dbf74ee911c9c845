package apperror

import (
	"errors"
	"net/http"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FieldError is one entry of the details list returned on validation failures.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// formatFieldName turns documentNumber or document_number into "Document Number".
func formatFieldName(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r == '_' {
			b.WriteRune(' ')
			continue
		}
		if i > 0 && unicode.IsUpper(r) {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	return cases.Title(language.English).String(b.String())
}

// MapValidationError converts binding errors into a 400 AppError. The message
// names the first failing field; details list every failing field.
func MapValidationError(err error) error {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		details := make([]FieldError, 0, len(errs))
		for _, fe := range errs {
			details = append(details, FieldError{Field: fe.Field(), Rule: fe.Tag()})
		}

		first := errs[0]
		human := formatFieldName(first.Field())
		if first.Tag() == "required" {
			return RequiredField(human).WithDetails(details)
		}
		return InvalidField(human).WithDetails(details)
	}

	return New(
		CodeInvalidInput,
		"Invalid input",
		http.StatusBadRequest,
	)
}
