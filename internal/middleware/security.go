package middleware

import (
	"github.com/labstack/echo/v4"
)

// SecurityHeaders marks bridge responses as non-cacheable and non-embeddable.
// Session snapshots carry the cached profile, so nothing may be stored by the web view.
func SecurityHeaders() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Response().Header()

			header.Set("X-Content-Type-Options", "nosniff")
			header.Set("X-Frame-Options", "DENY")
			header.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
			header.Set("Referrer-Policy", "no-referrer")
			header.Set("Cross-Origin-Resource-Policy", "same-origin")

			header.Set("Cache-Control", "no-store, no-cache, must-revalidate, private")
			header.Set("Pragma", "no-cache")
			header.Set("Expires", "0")

			return next(c)
		}
	}
}
