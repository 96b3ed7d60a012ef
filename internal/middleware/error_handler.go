package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"shiftHire/pkg/logger"
	jsonres "shiftHire/pkg/response"

	"github.com/labstack/echo/v4"
)

// ErrorHandler renders every error that reaches echo as {"message": ...}.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := http.StatusText(code)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if he.Internal != nil {
			logger.Debug("HTTP error", "error", he.Internal)
		}
		switch m := he.Message.(type) {
		case string:
			message = m
		case error:
			message = m.Error()
		default:
			message = fmt.Sprint(m)
		}
	} else {
		logger.Error("Unhandled error", "error", err, "path", c.Path())
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, jsonres.Error(message))
	}
	if err != nil {
		logger.Error("Failed to write error response", "error", err)
	}
}
