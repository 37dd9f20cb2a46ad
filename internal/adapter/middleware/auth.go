package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const operatorKey = "operator_id"

// TokenCheck validates a raw bearer token and returns the operator id.
type TokenCheck func(raw string) (string, error)

// RequireBearer rejects requests without a valid "Authorization: Bearer" token
// and stores the operator id for the handlers behind it.
func RequireBearer(check TokenCheck) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Request().Header.Get(echo.HeaderAuthorization)
			raw, ok := strings.CutPrefix(h, "Bearer ")
			if !ok || strings.TrimSpace(raw) == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
			}
			opID, err := check(strings.TrimSpace(raw))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid or expired token"})
			}
			c.Set(operatorKey, opID)
			return next(c)
		}
	}
}

// OperatorID returns the id stored by RequireBearer, or "".
func OperatorID(c echo.Context) string {
	s, _ := c.Get(operatorKey).(string)
	return s
}
