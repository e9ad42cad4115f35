//go:build unit

package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	nethttptest "net/http/httptest"
	"strings"
	"testing"

	"table-concierge/internal/handler/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoggedRouter(buf *bytes.Buffer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(buf, nil))
	router := gin.New()
	router.Use(middleware.RequestLogger(logger))
	router.POST("/api/messages", func(c *gin.Context) {
		middleware.SetGuestIdentity(c, "+27825550100")
		c.String(http.StatusOK, middleware.GetRequestID(c))
	})
	return router
}

func TestRequestLogger(t *testing.T) {
	t.Run("generates request id and masks guest", func(t *testing.T) {
		var buf bytes.Buffer
		router := newLoggedRouter(&buf)

		rec := nethttptest.NewRecorder()
		router.ServeHTTP(rec, nethttptest.NewRequest(http.MethodPost, "/api/messages", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		id := rec.Header().Get(middleware.RequestIDHeader)
		assert.NotEmpty(t, id)
		assert.Equal(t, id, rec.Body.String())

		line := buf.String()
		assert.Contains(t, line, "request_id="+id)
		assert.Contains(t, line, "guest=*******0100")
		assert.NotContains(t, line, "+27825550100")
	})

	t.Run("reuses inbound request id", func(t *testing.T) {
		var buf bytes.Buffer
		router := newLoggedRouter(&buf)

		req := nethttptest.NewRequest(http.MethodPost, "/api/messages", nil)
		req.Header.Set(middleware.RequestIDHeader, "gateway-123")
		rec := nethttptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, "gateway-123", rec.Header().Get(middleware.RequestIDHeader))
	})

	t.Run("ignores oversized inbound id", func(t *testing.T) {
		var buf bytes.Buffer
		router := newLoggedRouter(&buf)

		req := nethttptest.NewRequest(http.MethodPost, "/api/messages", nil)
		req.Header.Set(middleware.RequestIDHeader, strings.Repeat("x", 100))
		rec := nethttptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Len(t, rec.Header().Get(middleware.RequestIDHeader), 36)
	})
}
