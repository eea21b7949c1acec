package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/assignhub/assignment-api/internal/core/domain"
	"github.com/assignhub/assignment-api/internal/core/ports"
)

// CookieName is the session cookie carrying the access token.
const CookieName = "access_token"

// tokenContextKey is the echo context key for the decoded token.
const tokenContextKey = "token"

// Auth decodes the session cookie and injects the token data into the echo
// context and the actor name into the request context. Requests without a
// valid cookie are rejected.
func Auth(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(CookieName)
			if err != nil || cookie.Value == "" {
				return domain.ErrInvalidCredentials
			}

			data, err := auth.DecodeToken(cookie.Value)
			if err != nil {
				return err
			}

			c.Set(tokenContextKey, data)

			req := c.Request()
			c.SetRequest(req.WithContext(domain.WithActor(req.Context(), data.Username)))

			return next(c)
		}
	}
}

// TokenFrom extracts the decoded token injected by Auth. Returns nil when the
// middleware did not run.
func TokenFrom(c echo.Context) *ports.TokenData {
	data, _ := c.Get(tokenContextKey).(*ports.TokenData)
	return data
}
