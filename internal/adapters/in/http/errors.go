package http

import (
	"errors"
	"net/http"

	"storehouse/internal/core/application/authz"
	"storehouse/internal/core/domain/model/order"
	"storehouse/internal/core/domain/model/user"
	"storehouse/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

var errMissingCaller = errors.New("caller identity is missing")

// statusFor maps a use case error to its response status.
func statusFor(err error) int {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}

	switch {
	case errors.Is(err, errMissingCaller):
		return http.StatusUnauthorized
	case errors.Is(err, authz.ErrNotAuthorized):
		return http.StatusForbidden
	case errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, order.ErrDuplicateActiveOrder),
		errors.Is(err, order.ErrStatusCannotBeChanged),
		errors.Is(err, user.ErrUserAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, order.ErrInvalidCustomerReference):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrFieldNotValid),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as an ErrorResponse. Internal errors are not echoed back.
func fail(c echo.Context, err error) error {
	code := statusFor(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		c.Set(internalErrorKey, err)
		message = http.StatusText(code)
	}
	return c.JSON(code, ErrorResponse{Code: code, Message: message})
}
