package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/webstack-labs/auth-service/internal/config"
)

func testCookieHelper(maxAge int) *CookieHelper {
	return NewCookieHelper(config.CookieConfig{
		Path:     "/",
		Domain:   "",
		Secure:   false,
		SameSite: http.SameSiteLaxMode,
	}, maxAge)
}

func recordCookie(t *testing.T, write func(c *gin.Context)) []*http.Cookie {
	t.Helper()

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	write(c)
	return w.Result().Cookies()
}

func TestSetSessionCookie(t *testing.T) {
	helper := testCookieHelper(3600)

	cookies := recordCookie(t, func(c *gin.Context) {
		helper.SetSessionCookie(c, "session-123")
	})

	if len(cookies) != 1 {
		t.Fatalf("got %d cookies, want 1", len(cookies))
	}
	cookie := cookies[0]
	if cookie.Name != SessionCookie {
		t.Errorf("cookie name = %q, want %q", cookie.Name, SessionCookie)
	}
	if cookie.Value != "session-123" {
		t.Errorf("cookie value = %q, want %q", cookie.Value, "session-123")
	}
	if !cookie.HttpOnly {
		t.Error("session cookie must be httpOnly")
	}
	if cookie.MaxAge != 3600 {
		t.Errorf("cookie max age = %d, want 3600", cookie.MaxAge)
	}
}

func TestClearSessionCookie(t *testing.T) {
	helper := testCookieHelper(3600)

	cookies := recordCookie(t, func(c *gin.Context) {
		helper.ClearSessionCookie(c)
	})

	if len(cookies) != 1 {
		t.Fatalf("got %d cookies, want 1", len(cookies))
	}
	if cookies[0].MaxAge >= 0 {
		t.Errorf("clearing cookie max age = %d, want negative", cookies[0].MaxAge)
	}
	if cookies[0].Value != "" {
		t.Errorf("cleared cookie value = %q, want empty", cookies[0].Value)
	}
}

func TestGetSessionID(t *testing.T) {
	helper := testCookieHelper(0)
	gin.SetMode(gin.TestMode)

	t.Run("present", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		c.Request.AddCookie(&http.Cookie{Name: SessionCookie, Value: "session-123"})

		if got := helper.GetSessionID(c); got != "session-123" {
			t.Errorf("GetSessionID() = %q, want %q", got, "session-123")
		}
	})

	t.Run("absent", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		if got := helper.GetSessionID(c); got != "" {
			t.Errorf("GetSessionID() = %q, want empty", got)
		}
	})
}
