package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// SecurityHeaders sets the standard protective headers on every response.
// Responses carry clinical data, so caching is disabled across the board;
// the assist endpoints stream SSE and set their own Cache-Control.
func SecurityHeaders() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()

			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
			h.Set("Referrer-Policy", "no-referrer")
			if !strings.HasPrefix(c.Request().URL.Path, "/api/v1/assist/") {
				h.Set("Cache-Control", "no-store")
			}

			return next(c)
		}
	}
}
