// Package middleware provides HTTP middleware for the auth service.
package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

// CSRF returns middleware that validates Origin/Referer headers on
// state-changing requests. Required because the session rides in a
// cookie that browsers attach to every request for the domain.
//
// An empty allowedOrigins list disables the check; that is only
// acceptable for non-browser deployments.
func CSRF(allowedOrigins []string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[normalizeOrigin(origin)] = true
	}

	return func(c *gin.Context) {
		method := c.Request.Method
		if method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions {
			c.Next()
			return
		}
		if len(allowed) == 0 {
			c.Next()
			return
		}

		origin := c.GetHeader("Origin")
		if origin == "" {
			if referer := c.GetHeader("Referer"); referer != "" {
				origin = refererOrigin(referer)
			}
		}

		// Requests without browser context (curl, service-to-service)
		// carry neither header and are allowed through; the session
		// cookie still gates them.
		if origin == "" {
			c.Next()
			return
		}

		if !allowed[normalizeOrigin(origin)] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "CSRF validation failed: invalid origin",
			})
			return
		}
		c.Next()
	}
}

func normalizeOrigin(origin string) string {
	return strings.TrimSuffix(strings.ToLower(origin), "/")
}

// refererOrigin extracts scheme://host from a referer URL.
func refererOrigin(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return parsed.Scheme + "://" + parsed.Host
}
