package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"table-concierge/internal/domain/user"
	"table-concierge/internal/handler/api"
	"table-concierge/internal/handler/middleware"
	"table-concierge/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Auth         *api.AuthHandler
	Message      *api.MessageHandler
	Queue        *api.QueueHandler
	Subscription *api.SubscriptionHandler
}

func NewHandlers(auth *api.AuthHandler, message *api.MessageHandler, queue *api.QueueHandler, subscription *api.SubscriptionHandler) Handlers {
	return Handlers{
		Auth:         auth,
		Message:      message,
		Queue:        queue,
		Subscription: subscription,
	}
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *slog.Logger, h Handlers, authMiddleware *middleware.AuthMiddleware, limiter *middleware.GuestRateLimiter) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, h, authMiddleware, limiter)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *slog.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS, logger))
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware, limiter *middleware.GuestRateLimiter) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		// Guest traffic from the chat transport; limited per guest inside the handler.
		addRoutes(apiGroup, []route{
			{Method: http.MethodPost, Path: "/messages", Handler: h.Message.HandleMessage},
			{Method: http.MethodPost, Path: "/conversation", Handler: h.Message.HandleConversation},
		})

		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login, Mw: []gin.HandlerFunc{limiter.LimitByClientIP()}},
				{Method: http.MethodPost, Path: "/logout", Handler: h.Auth.Logout},
			})
		}

		me := apiGroup.Group("/me")
		me.Use(authMiddleware.RequireAuth())
		{
			addRoutes(me, []route{
				{Method: http.MethodGet, Path: "/subscription", Handler: h.Subscription.GetMine},
			})
		}

		queue := apiGroup.Group("/locations/:locationId/queue")
		queue.Use(authMiddleware.RequireAuth())
		{
			operator := authMiddleware.RequireRoleAtLeast(user.RoleOperator)
			addRoutes(queue, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Queue.GetQueue},
				{Method: http.MethodPost, Path: "", Handler: h.Queue.JoinQueue, Mw: []gin.HandlerFunc{operator}},
				{Method: http.MethodPost, Path: "/recalculate", Handler: h.Queue.Recalculate, Mw: []gin.HandlerFunc{operator}},
				{Method: http.MethodPatch, Path: "/:entryId", Handler: h.Queue.UpdateEntryStatus, Mw: []gin.HandlerFunc{operator}},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
