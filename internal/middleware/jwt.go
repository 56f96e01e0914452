package middleware // reusable HTTP middleware for the viewer

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-planner/internal/security"
)

// ViewerAuth returns an Echo middleware that requires a Bearer token minted
// by security.NewViewerToken with the same secret. The token subject is
// stored under "viewer" in the request context.
func ViewerAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			sub, err := security.ParseViewerToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			c.Set("viewer", sub)
			return next(c)
		}
	}
}
