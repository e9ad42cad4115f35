//go:build unit

package middleware_test

import (
	"io"
	"log/slog"
	"net/http"
	nethttptest "net/http/httptest"
	"testing"
	"time"

	"table-concierge/internal/handler/middleware"
	"table-concierge/internal/pkg/config"
	"table-concierge/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := config.CORSConfig{
		AllowOrigins:     []string{"http://widget.local"},
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           time.Hour,
	}
	router := gin.New()
	router.Use(middleware.NewCORSMiddleware(cfg, slog.New(slog.NewTextHandler(io.Discard, nil))))
	router.POST("/api/messages", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("preflight allows request id header", func(t *testing.T) {
		req := nethttptest.NewRequest(http.MethodOptions, "/api/messages", nil)
		req.Header.Set("Origin", "http://widget.local")
		req.Header.Set("Access-Control-Request-Method", "POST")
		req.Header.Set("Access-Control-Request-Headers", "Content-Type, X-Request-ID")
		rec := nethttptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		httptest.AssertHeaders(t, rec, map[string]string{
			"Access-Control-Allow-Origin":      "http://widget.local",
			"Access-Control-Allow-Credentials": "true",
		})
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "X-Request-Id")
	})

	t.Run("simple request exposes request id", func(t *testing.T) {
		req := nethttptest.NewRequest(http.MethodPost, "/api/messages", nil)
		req.Header.Set("Origin", "http://widget.local")
		rec := nethttptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Access-Control-Expose-Headers"), "X-Request-Id")
	})

	t.Run("unknown origin is refused", func(t *testing.T) {
		req := nethttptest.NewRequest(http.MethodPost, "/api/messages", nil)
		req.Header.Set("Origin", "http://elsewhere.local")
		rec := nethttptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestCORSMiddlewareWithoutOrigins(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	for name, origins := range map[string][]string{"unset": nil, "blank": {""}} {
		t.Run(name, func(t *testing.T) {
			var handler gin.HandlerFunc
			assert.NotPanics(t, func() {
				handler = middleware.NewCORSMiddleware(config.CORSConfig{AllowOrigins: origins}, logger)
			})

			router := gin.New()
			router.Use(handler)
			router.POST("/api/messages", func(c *gin.Context) { c.Status(http.StatusOK) })

			rec := nethttptest.NewRecorder()
			router.ServeHTTP(rec, nethttptest.NewRequest(http.MethodPost, "/api/messages", nil))
			assert.Equal(t, http.StatusOK, rec.Code)

			req := nethttptest.NewRequest(http.MethodPost, "/api/messages", nil)
			req.Header.Set("Origin", "http://widget.local")
			rec = nethttptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusForbidden, rec.Code)
		})
	}
}

func TestCORSMiddlewareAcceptsTestConfig(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	assert.NotPanics(t, func() {
		middleware.NewCORSMiddleware(config.NewTestConfig().CORS, logger)
	})
}
