package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestRequestIDMiddleware(t *testing.T) {
	r := newEngine(RequestIDMiddleware())

	t.Run("generates an id when none is supplied", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
		require.Len(t, w.Header().Get("X-Request-Id"), 32)
	})

	t.Run("echoes a supplied id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ok", nil)
		req.Header.Set("X-Request-Id", "abc123")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, "abc123", w.Header().Get("X-Request-Id"))
	})
}

func TestCORSMiddleware(t *testing.T) {
	r := newEngine(CORSMiddleware("http://frontend.example"))

	t.Run("allows the configured origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ok", nil)
		req.Header.Set("Origin", "http://frontend.example")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, "http://frontend.example", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("rejects any other origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ok", nil)
		req.Header.Set("Origin", "http://evil.example")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}
