// Package handlers contains HTTP request handlers for the auth service.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/webstack-labs/auth-service/internal/models"
	"github.com/webstack-labs/auth-service/internal/service"
)

// AuthHandler translates HTTP requests into Auth Facade calls.
type AuthHandler struct {
	authService service.AuthService
	cookies     *CookieHelper
	log         *slog.Logger
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(authService service.AuthService, cookies *CookieHelper, log *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookies:     cookies,
		log:         log,
	}
}

// Welcome handles GET /.
func (h *AuthHandler) Welcome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Bienvenue"})
}

// Register handles POST /users. Expects form fields email and password.
func (h *AuthHandler) Register(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")

	user, err := h.authService.Register(c.Request.Context(), email, password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDuplicateEmail):
			c.JSON(http.StatusBadRequest, gin.H{"message": "email already registered"})
		case errors.Is(err, service.ErrEmptyCredentials):
			c.JSON(http.StatusBadRequest, gin.H{"message": "email and password required"})
		default:
			h.internalError(c, "register failed", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"email": user.Email, "message": "user created"})
}

// Login handles POST /sessions. On success the session id is set as an
// httpOnly cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")

	if !h.authService.ValidLogin(c.Request.Context(), email, password) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	sessionID, err := h.authService.CreateSession(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		h.internalError(c, "create session failed", err)
		return
	}

	h.cookies.SetSessionCookie(c, sessionID)
	c.JSON(http.StatusOK, gin.H{"email": email, "message": "logged in"})
}

// Logout handles DELETE /sessions. A missing or unknown session cookie is
// a 403; on success the cookie is cleared and the client redirected home.
func (h *AuthHandler) Logout(c *gin.Context) {
	user, ok := h.sessionUser(c)
	if !ok {
		return
	}

	if err := h.authService.DestroySession(c.Request.Context(), user.ID); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		h.internalError(c, "destroy session failed", err)
		return
	}

	h.cookies.ClearSessionCookie(c)
	c.Redirect(http.StatusFound, "/")
}

// Profile handles GET /profile.
func (h *AuthHandler) Profile(c *gin.Context) {
	user, ok := h.sessionUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"email": user.Email})
}

// GetResetPasswordToken handles POST /reset_password.
func (h *AuthHandler) GetResetPasswordToken(c *gin.Context) {
	email := c.PostForm("email")

	token, err := h.authService.GetResetPasswordToken(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		h.internalError(c, "reset token request failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"email": email, "reset_token": token})
}

// UpdatePassword handles PUT /reset_password.
func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	email := c.PostForm("email")
	resetToken := c.PostForm("reset_token")
	newPassword := c.PostForm("new_password")

	if err := h.authService.UpdatePassword(c.Request.Context(), resetToken, newPassword); err != nil {
		if errors.Is(err, service.ErrInvalidToken) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		h.internalError(c, "password update failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"email": email, "message": "Password updated"})
}

// sessionUser resolves the session cookie to a user. A missing session is
// answered with 403 and an internal failure with 500; the two are never
// conflated.
func (h *AuthHandler) sessionUser(c *gin.Context) (*models.User, bool) {
	sessionID := h.cookies.GetSessionID(c)

	user, err := h.authService.GetUserFromSession(c.Request.Context(), sessionID)
	if err != nil {
		h.internalError(c, "session lookup failed", err)
		return nil, false
	}
	if user == nil {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return nil, false
	}
	return user, true
}

func (h *AuthHandler) internalError(c *gin.Context, msg string, err error) {
	h.log.ErrorContext(c.Request.Context(), msg, "error", err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
