package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/ketomate/backend/internal/config"
	"github.com/ketomate/backend/internal/services"
)

const (
	accessTokenCookie  = "access_token"
	refreshTokenCookie = "refresh_token"
)

// CallbackHandler serves the URL every confirmation email, recovery
// email, and OAuth hand-off redirects the browser to.
type CallbackHandler struct {
	callback *services.CallbackService
	auth     *services.AuthService
	cfg      *config.Config
}

func NewCallbackHandler(callback *services.CallbackService, auth *services.AuthService, cfg *config.Config) *CallbackHandler {
	return &CallbackHandler{callback: callback, auth: auth, cfg: cfg}
}

func (h *CallbackHandler) Handle(c *fiber.Ctx) error {
	code := c.Query("code")
	typ := c.Query("type")

	sessionUserID := uuid.Nil
	if cookie := c.Cookies(accessTokenCookie); cookie != "" {
		if userID, err := h.auth.ParseAccessToken(cookie); err == nil {
			sessionUserID = userID
		}
	}

	outcome := h.callback.Handle(code, typ, sessionUserID)

	if outcome.Session != nil {
		h.setSessionCookies(c, outcome.Session.AccessToken, outcome.Session.RefreshToken)
	}

	return c.Redirect(h.cfg.SiteURL+outcome.Redirect, fiber.StatusSeeOther)
}

func (h *CallbackHandler) setSessionCookies(c *fiber.Ctx, accessToken, refreshToken string) {
	c.Cookie(&fiber.Cookie{
		Name:     accessTokenCookie,
		Value:    accessToken,
		Expires:  time.Now().Add(h.cfg.JWTAccessExpiry),
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})
	c.Cookie(&fiber.Cookie{
		Name:     refreshTokenCookie,
		Value:    refreshToken,
		Expires:  time.Now().Add(h.cfg.JWTRefreshExpiry),
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})
}
