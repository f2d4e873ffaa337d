package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func setupSweepRouter(apiKey string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/generate", SweepAuthMiddleware(apiKey), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestSweepAuthMiddleware(t *testing.T) {
	t.Run("open_when_no_key_configured", func(t *testing.T) {
		r := setupSweepRouter("")
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/generate", nil)
		r.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("rejects_missing_key", func(t *testing.T) {
		r := setupSweepRouter("secret")
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/generate", nil)
		r.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("rejects_wrong_key", func(t *testing.T) {
		r := setupSweepRouter("secret")
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/generate", nil)
		req.Header.Set("X-API-Key", "nope")
		r.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("accepts_correct_key", func(t *testing.T) {
		r := setupSweepRouter("secret")
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/generate", nil)
		req.Header.Set("X-API-Key", "secret")
		r.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
	})
}
