package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/cvtext/internal/dates"
	"github.com/jonathan/cvtext/internal/db"
	"github.com/jonathan/cvtext/internal/parsing"
)

// ErrStoreUnavailable is returned by document endpoints when the server runs without a database.
var ErrStoreUnavailable = errors.New("document storage is not configured")

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		dateErr       *parsing.DateError
		structuralErr *parsing.StructuralError
		validationErr *ErrValidation
		formatErr     *dates.DateFormatError
		styleErr      *dates.StyleError
	)
	switch {
	case errors.As(err, &dateErr), errors.As(err, &structuralErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &validationErr), errors.As(err, &formatErr), errors.As(err, &styleErr):
		return http.StatusBadRequest
	case errors.Is(err, db.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// errorLine returns the offending source line of a fatal parse error, or "".
func errorLine(err error) string {
	var dateErr *parsing.DateError
	if errors.As(err, &dateErr) {
		return dateErr.Line
	}
	var structuralErr *parsing.StructuralError
	if errors.As(err, &structuralErr) {
		return structuralErr.Line
	}
	return ""
}

// toValidationError converts the first validator failure into an ErrValidation.
func toValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	fe := fieldErrs[0]
	msg := fmt.Sprintf("failed on %q", fe.Tag())
	switch fe.Tag() {
	case "required":
		msg = "is required"
	case "max":
		msg = fmt.Sprintf("must be at most %s characters", fe.Param())
	case "datestyle":
		msg = fmt.Sprintf("unrecognized date style %q", fe.Value())
	}
	return &ErrValidation{Field: fe.Field(), Message: msg}
}
