package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/webstack-labs/auth-service/internal/config"
)

// SessionCookie is the name of the session identifier cookie.
const SessionCookie = "session_id"

// CookieHelper manages the session cookie.
type CookieHelper struct {
	config config.CookieConfig
	maxAge int
}

// NewCookieHelper creates a new cookie helper with the given configuration.
// maxAge is the cookie lifetime in seconds; zero means a session cookie.
func NewCookieHelper(cfg config.CookieConfig, maxAge int) *CookieHelper {
	return &CookieHelper{config: cfg, maxAge: maxAge}
}

// SetSessionCookie writes the session id cookie.
func (h *CookieHelper) SetSessionCookie(c *gin.Context, sessionID string) {
	h.setCookie(c, sessionID, h.maxAge)
}

// ClearSessionCookie removes the session cookie.
func (h *CookieHelper) ClearSessionCookie(c *gin.Context) {
	h.setCookie(c, "", -1)
}

// GetSessionID retrieves the session id from the cookie, or "" if unset.
func (h *CookieHelper) GetSessionID(c *gin.Context) string {
	sessionID, err := c.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return sessionID
}

func (h *CookieHelper) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(h.config.SameSite)
	c.SetCookie(
		SessionCookie,
		value,
		maxAge,
		h.config.Path,
		h.config.Domain,
		h.config.Secure,
		true, // httpOnly - always true for the session cookie
	)
}
