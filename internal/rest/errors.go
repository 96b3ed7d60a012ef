package rest

import (
	"errors"
	"net/http"
	"unicode"
	"unicode/utf8"

	"shiftHire/domain"
	"shiftHire/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateResource),
		errors.Is(err, domain.ErrPreconditionFailed),
		errors.Is(err, domain.ErrInvalidPackage),
		errors.Is(err, domain.ErrInvalidOTP),
		errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrWebhookVerification):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// errorResponse maps a service error to its status. Unknown errors are
// logged and hidden behind a generic message.
func errorResponse(c echo.Context, err error) error {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		logger.Error("Request failed", "error", err, "path", c.Path())
		return c.JSON(code, ResponseError{Message: "Internal server error"})
	}

	return c.JSON(code, ResponseError{Message: capitalize(err.Error())})
}

// badRequest answers bind and validation failures without echoing parser internals.
func badRequest(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, ResponseError{Message: capitalize(validationMessage(err))})
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
