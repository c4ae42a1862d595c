package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lendit/internal/handler/api"
	"lendit/internal/handler/middleware"
	"lendit/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	authHandler *api.AuthHandler,
	userHandler *api.UserHandler,
	itemHandler *api.ItemHandler,
	bookingHandler *api.BookingHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, authHandler, userHandler, itemHandler, bookingHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(cfg.Log))
	engine.Use(middleware.MetricsMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	authHandler *api.AuthHandler,
	userHandler *api.UserHandler,
	itemHandler *api.ItemHandler,
	bookingHandler *api.BookingHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: authHandler.Login},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: authHandler.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: authHandler.Me},
			})
		}

		users := apiGroup.Group("/users")
		{
			addRoutes(users, []route{
				{Method: http.MethodPost, Path: "", Handler: userHandler.Register},
			})

			usersAuthed := users.Group("")
			usersAuthed.Use(authMiddleware.RequireAuth())
			addRoutes(usersAuthed, []route{
				{Method: http.MethodGet, Path: "", Handler: userHandler.List},
				{Method: http.MethodGet, Path: "/:id", Handler: userHandler.Get},
				{Method: http.MethodPatch, Path: "/:id", Handler: userHandler.Update},
				{Method: http.MethodDelete, Path: "/:id", Handler: userHandler.Delete},
			})
		}

		items := apiGroup.Group("/items")
		items.Use(authMiddleware.RequireAuth())
		{
			addRoutes(items, []route{
				{Method: http.MethodPost, Path: "", Handler: itemHandler.Create},
				{Method: http.MethodGet, Path: "", Handler: itemHandler.ListOwn},
				{Method: http.MethodGet, Path: "/search", Handler: itemHandler.Search},
				{Method: http.MethodGet, Path: "/:id", Handler: itemHandler.Get},
				{Method: http.MethodPatch, Path: "/:id", Handler: itemHandler.Update},
				{Method: http.MethodPost, Path: "/:id/comments", Handler: itemHandler.AddComment},
			})
		}

		bookings := apiGroup.Group("/bookings")
		bookings.Use(authMiddleware.RequireAuth())
		{
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "", Handler: bookingHandler.Create},
				{Method: http.MethodGet, Path: "", Handler: bookingHandler.ListOwn},
				{Method: http.MethodGet, Path: "/owner", Handler: bookingHandler.ListOwner},
				{Method: http.MethodGet, Path: "/:id", Handler: bookingHandler.Get},
				{Method: http.MethodPatch, Path: "/:id", Handler: bookingHandler.Decide},
			})
		}
	}
}

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
