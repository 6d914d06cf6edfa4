package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/jobdash/internal/charts"
	"github.com/jonathan/jobdash/internal/dashboard"
	"github.com/jonathan/jobdash/internal/fetch"
	"github.com/jonathan/jobdash/internal/view"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrNotFound indicates the requested item does not exist
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		notFoundErr   *ErrNotFound
		optionErr     *view.OptionError
		rangeErr      *charts.RangeError
		fetchErr      *fetch.Error
	)
	switch {
	case errors.As(err, &validationErr), errors.As(err, &optionErr), errors.As(err, &rangeErr),
		errors.Is(err, dashboard.ErrIncompleteRange):
		return http.StatusBadRequest
	case errors.As(err, &notFoundErr), errors.Is(err, dashboard.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, dashboard.ErrStaleResult):
		return http.StatusConflict
	case errors.As(err, &fetchErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
