package middleware

import (
	"log/slog"
	"slices"
	"strings"

	"table-concierge/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewCORSMiddleware always lets browsers send and read the request id so
// chat widgets can correlate replies with server logs. With no origins
// configured every cross-origin request is refused; same-origin traffic is
// unaffected.
func NewCORSMiddleware(cfg config.CORSConfig, logger *slog.Logger) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowOrigins:     nonBlank(cfg.AllowOrigins),
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     withHeader(cfg.AllowHeaders, RequestIDHeader),
		ExposeHeaders:    withHeader(cfg.ExposeHeaders, RequestIDHeader),
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}
	if len(corsCfg.AllowOrigins) == 0 {
		logger.Warn("no CORS origins configured, refusing cross-origin requests")
		corsCfg.AllowOriginFunc = func(string) bool { return false }
	}

	logger.Info("cors enabled",
		slog.Any("origins", corsCfg.AllowOrigins),
		slog.Bool("credentials", cfg.AllowCredentials))

	return cors.New(corsCfg)
}

func nonBlank(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func withHeader(headers []string, name string) []string {
	if slices.Contains(headers, name) {
		return headers
	}
	return append(slices.Clone(headers), name)
}
