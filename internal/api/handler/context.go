package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/assignhub/assignment-api/internal/api/middleware"
	"github.com/assignhub/assignment-api/internal/core/ports"
)

// ctxToken extracts the token data injected by the Auth middleware. A missing
// token means the middleware did not run; fail fast with 401 before any
// service call.
func ctxToken(c echo.Context) (*ports.TokenData, error) {
	data := middleware.TokenFrom(c)
	if data == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return data, nil
}
