package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/assignhub/assignment-api/internal/api/middleware"
	"github.com/assignhub/assignment-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	tokenTTL    time.Duration
}

func NewAuthHandler(authService ports.AuthService, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{authService: authService, tokenTTL: tokenTTL}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login authenticates a user and sets the session cookie.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Param        body  body  loginRequest  true  "Login credentials"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      429  {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	c.SetCookie(h.sessionCookie(token))
	return c.NoContent(http.StatusNoContent)
}

// Logout deletes the session cookie.
//
// @Summary      Logout
// @Tags         auth
// @Success      205
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	cookie := h.sessionCookie("")
	cookie.MaxAge = -1
	c.SetCookie(cookie)
	return c.NoContent(http.StatusResetContent)
}

// SetSessionCookie attaches a fresh session cookie to the response. Used by
// signup, which issues a token alongside the created user.
func (h *AuthHandler) SetSessionCookie(c echo.Context, token string) {
	c.SetCookie(h.sessionCookie(token))
}

func (h *AuthHandler) sessionCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.tokenTTL / time.Second),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	}
}
