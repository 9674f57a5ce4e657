package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/career-pathway/internal/analysis"
	"github.com/jonathan/career-pathway/internal/charts"
	"github.com/jonathan/career-pathway/internal/db"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// newValidationError converts a validator error into an ErrValidation naming the first
// failing field.
func newValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ErrValidation{Field: "body", Message: err.Error()}
	}
	fe := verrs[0]
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	message := "failed on " + fe.Tag()
	if fe.Param() != "" {
		message += "=" + fe.Param()
	}
	return &ErrValidation{Field: field, Message: message}
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var validationErr *ErrValidation
	var scaleErr *charts.ScaleError
	var generateErr *analysis.GenerateError

	switch {
	case errors.As(err, &validationErr), errors.Is(err, analysis.ErrEmptyProfile):
		return http.StatusBadRequest
	case errors.Is(err, db.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &scaleErr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, analysis.ErrNoGenerator):
		return http.StatusServiceUnavailable
	case errors.As(err, &generateErr):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
