package transport

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestRateLimitPerAddress(t *testing.T) {
	e := echo.New()
	limit := CreateRateLimitMiddleware(1, 1)
	setAddress := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if address := c.Request().Header.Get("X-Test-Address"); address != "" {
				c.Set("Address", address)
			}
			return next(c)
		}
	}
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, setAddress, limit)

	request := func(address string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if address != "" {
			req.Header.Set("X-Test-Address", address)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, request("0x2222222222222222222222222222222222222222"))
	assert.Equal(t, http.StatusTooManyRequests, request("0x2222222222222222222222222222222222222222"))
	// other callers have their own budget
	assert.Equal(t, http.StatusOK, request("0x3333333333333333333333333333333333333333"))
	assert.Equal(t, http.StatusOK, request(""))
	assert.Equal(t, http.StatusTooManyRequests, request(""))
}
