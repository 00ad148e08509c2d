package http

import (
	"errors"
	"net/http"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/product"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// writeError maps a domain error to its HTTP status and writes the uniform
// error body.
//
// Mapping:
//   - not found                      -> 404
//   - insufficient stock             -> 409
//   - invalid PIN, invalid transition -> 400
//   - constructor/validation errors  -> 400
//   - role not allowed               -> 403
//   - anything else                  -> 500
func writeError(ctx echo.Context, err error) error {
	code := statusFor(err)

	return ctx.JSON(code, ErrorResponse{
		Code:    code,
		Message: err.Error(),
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, product.ErrInsufficientStock):
		return http.StatusConflict
	case errors.Is(err, services.ErrActorNotAllowed):
		return http.StatusForbidden
	case errors.Is(err, order.ErrInvalidPin),
		errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
