package middleware

import (
	"net/http"
	"strings"

	"shiftHire/domain"
	jsonres "shiftHire/pkg/response"

	"github.com/labstack/echo/v4"
)

const (
	ContextUserID = "user_id"
	ContextRole   = "role"
)

// Authenticator verifies bearer tokens.
type Authenticator interface {
	Authenticate(token string) (domain.Identity, error)
}

// AuthMiddleware rejects requests without a valid bearer token. The
// caller's id and role are stored in the echo context.
func AuthMiddleware(auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)

			tokenParts := strings.SplitN(authHeader, " ", 2)
			if len(tokenParts) != 2 || !strings.EqualFold(tokenParts[0], "Bearer") || tokenParts[1] == "" {
				return c.JSON(http.StatusUnauthorized, jsonres.Error("Invalid authentication"))
			}

			identity, err := auth.Authenticate(strings.TrimSpace(tokenParts[1]))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, jsonres.Error("Invalid authentication"))
			}

			c.Set(ContextUserID, identity.UserID)
			c.Set(ContextRole, identity.Role)

			return next(c)
		}
	}
}

// Guard fails closed: an empty actual role never matches.
func Guard(required, actual string) error {
	if actual == "" || required != actual {
		return domain.ErrForbidden
	}
	return nil
}

// RequireRole must run after AuthMiddleware.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actual, _ := c.Get(ContextRole).(string)
			if err := Guard(role, actual); err != nil {
				return c.JSON(http.StatusForbidden, jsonres.Error("Access denied"))
			}

			return next(c)
		}
	}
}

// UserID returns the authenticated caller, or "" outside AuthMiddleware.
func UserID(c echo.Context) string {
	id, _ := c.Get(ContextUserID).(string)
	return id
}
