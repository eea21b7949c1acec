package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/assignhub/assignment-api/internal/core/domain"
)

// Admin rejects requests whose token does not carry the admin flag. Must run
// after Auth.
func Admin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			data := TokenFrom(c)
			if data == nil {
				return domain.ErrInvalidCredentials
			}
			if !data.Admin {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
