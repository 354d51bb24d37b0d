package apimiddleware

import (
	"crypto/subtle"

	"github.com/labstack/echo/v4"
)

const backendKeyHeader = "X-Api-Key"

// BackendServiceAuth restricts a route to the euphrosyne backend itself,
// identified by a shared API key header. These routes are service-to-service
// only and never carry an end-user token.
func BackendServiceAuth(apiKey string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			value := c.Request().Header.Get(backendKeyHeader)
			if value == "" {
				return echo.ErrUnauthorized
			}

			if subtle.ConstantTimeCompare([]byte(value), []byte(apiKey)) != 1 {
				return echo.ErrUnauthorized
			}

			return next(c)
		}
	}
}
