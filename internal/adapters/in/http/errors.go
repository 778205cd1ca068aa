package http

import (
	"errors"
	"net/http"

	"fulfilment/internal/core/domain/model/order"
	"fulfilment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the JSON error body returned by every failing endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// respondError maps domain errors onto HTTP status codes. Authority failures
// must stay distinguishable from transition failures: a Forbidden never turns
// into a 422 and vice versa.
func respondError(ctx echo.Context, err error) error {
	return ctx.JSON(statusOf(err), Error{
		Code:    statusOf(err),
		Message: err.Error(),
	})
}

func statusOf(err error) int {
	var notFound *errs.ObjectNotFoundError
	if errors.As(err, &notFound) {
		return http.StatusNotFound
	}

	var forbidden *errs.OperationForbiddenError
	if errors.As(err, &forbidden) {
		return http.StatusForbidden
	}

	var invalidTransition *order.InvalidTransitionError
	if errors.As(err, &invalidTransition) {
		return http.StatusUnprocessableEntity
	}

	var conflict *errs.ConcurrencyConflictError
	if errors.As(err, &conflict) {
		return http.StatusConflict
	}

	var invalid *errs.ValueIsInvalidError
	var required *errs.ValueIsRequiredError
	var outOfRange *errs.ValueIsOutOfRangeError
	var badVersion *errs.VersionIsInvalidError
	if errors.As(err, &invalid) || errors.As(err, &required) ||
		errors.As(err, &outOfRange) || errors.As(err, &badVersion) {
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}
