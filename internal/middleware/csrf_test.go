package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func setupCSRFRouter(allowedOrigins []string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CSRF(allowedOrigins))
	handler := func(c *gin.Context) { c.Status(http.StatusOK) }
	router.GET("/ping", handler)
	router.POST("/ping", handler)
	return router
}

func doRequest(router *gin.Engine, method, origin, referer string) int {
	req := httptest.NewRequest(method, "/ping", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	if referer != "" {
		req.Header.Set("Referer", referer)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w.Code
}

func TestCSRF_AllowedOrigin(t *testing.T) {
	router := setupCSRFRouter([]string{"https://app.example.com"})

	tests := []struct {
		name   string
		origin string
		want   int
	}{
		{"exact match", "https://app.example.com", http.StatusOK},
		{"case insensitive", "HTTPS://APP.EXAMPLE.COM", http.StatusOK},
		{"trailing slash", "https://app.example.com/", http.StatusOK},
		{"different host", "https://evil.example.com", http.StatusForbidden},
		{"different scheme", "http://app.example.com", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := doRequest(router, http.MethodPost, tt.origin, ""); got != tt.want {
				t.Errorf("POST with origin %q status = %d, want %d", tt.origin, got, tt.want)
			}
		})
	}
}

func TestCSRF_RefererFallback(t *testing.T) {
	router := setupCSRFRouter([]string{"https://app.example.com"})

	if got := doRequest(router, http.MethodPost, "", "https://app.example.com/login"); got != http.StatusOK {
		t.Errorf("POST with allowed referer status = %d, want %d", got, http.StatusOK)
	}
	if got := doRequest(router, http.MethodPost, "", "https://evil.example.com/login"); got != http.StatusForbidden {
		t.Errorf("POST with disallowed referer status = %d, want %d", got, http.StatusForbidden)
	}
}

func TestCSRF_SafeMethodsSkipped(t *testing.T) {
	router := setupCSRFRouter([]string{"https://app.example.com"})

	if got := doRequest(router, http.MethodGet, "https://evil.example.com", ""); got != http.StatusOK {
		t.Errorf("GET with disallowed origin status = %d, want %d", got, http.StatusOK)
	}
}

func TestCSRF_NoBrowserContext(t *testing.T) {
	router := setupCSRFRouter([]string{"https://app.example.com"})

	// Requests without Origin/Referer (curl, service calls) pass through.
	if got := doRequest(router, http.MethodPost, "", ""); got != http.StatusOK {
		t.Errorf("POST without origin status = %d, want %d", got, http.StatusOK)
	}
}

func TestCSRF_DisabledWithoutOrigins(t *testing.T) {
	router := setupCSRFRouter(nil)

	if got := doRequest(router, http.MethodPost, "https://anywhere.example.com", ""); got != http.StatusOK {
		t.Errorf("POST with empty allowlist status = %d, want %d", got, http.StatusOK)
	}
}
