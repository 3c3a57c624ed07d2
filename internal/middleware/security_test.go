package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestSecurityHeaders(t *testing.T) {
	e := echo.New()

	handler := SecurityHeaders()(func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/session", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	assert.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	headers := rec.Header()
	assert.Equal(t, "nosniff", headers.Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", headers.Get("X-Frame-Options"))
	assert.Equal(t, "default-src 'none'; frame-ancestors 'none'", headers.Get("Content-Security-Policy"))
	assert.Equal(t, "no-referrer", headers.Get("Referrer-Policy"))
	assert.Equal(t, "same-origin", headers.Get("Cross-Origin-Resource-Policy"))

	assert.Equal(t, "no-store, no-cache, must-revalidate, private", headers.Get("Cache-Control"))
	assert.Equal(t, "no-cache", headers.Get("Pragma"))
	assert.Equal(t, "0", headers.Get("Expires"))
}

func TestSecurityHeadersOnErrorResponses(t *testing.T) {
	e := echo.New()

	handler := SecurityHeaders()(func(c echo.Context) error {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "not signed in"})
	})

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodPost, "/session/profile", nil), rec)

		assert.NoError(t, handler(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "no-store, no-cache, must-revalidate, private", rec.Header().Get("Cache-Control"))
	}
}
