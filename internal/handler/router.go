package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"coworking-backend/internal/handler/api"
	"coworking-backend/internal/handler/middleware"
	"coworking-backend/internal/pkg/config"
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
	roomHandler *api.RoomHandler,
	bookingHandler *api.BookingHandler,
	visitHandler *api.VisitHandler,
	donationHandler *api.DonationHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, authHandler, roomHandler, bookingHandler, visitHandler, donationHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	authHandler *api.AuthHandler,
	roomHandler *api.RoomHandler,
	bookingHandler *api.BookingHandler,
	visitHandler *api.VisitHandler,
	donationHandler *api.DonationHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/register", Handler: authHandler.Register},
				{Method: http.MethodPost, Path: "/login", Handler: authHandler.Login},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodGet, Path: "/me", Handler: authHandler.Me},
			})
		}

		rooms := apiGroup.Group("/rooms")
		{
			addRoutes(rooms, []route{
				{Method: http.MethodGet, Path: "", Handler: roomHandler.List},
				{Method: http.MethodGet, Path: "/:id", Handler: roomHandler.Get},
				{Method: http.MethodGet, Path: "/:id/availability", Handler: roomHandler.Availability},
				{Method: http.MethodGet, Path: "/:id/bookings", Handler: bookingHandler.ListByRoom},
			})

			roomsAdmin := rooms.Group("")
			roomsAdmin.Use(authMiddleware.RequireAuth())
			addRoutes(roomsAdmin, []route{
				{Method: http.MethodPost, Path: "", Handler: roomHandler.Create},
				{Method: http.MethodPatch, Path: "/:id", Handler: roomHandler.Update},
				{Method: http.MethodDelete, Path: "/:id", Handler: roomHandler.Deactivate},
			})
		}

		bookings := apiGroup.Group("/bookings")
		bookings.Use(authMiddleware.RequireAuth())
		{
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "", Handler: bookingHandler.Create},
				{Method: http.MethodGet, Path: "", Handler: bookingHandler.List},
				{Method: http.MethodGet, Path: "/:id", Handler: bookingHandler.Get},
				{Method: http.MethodPatch, Path: "/:id", Handler: bookingHandler.Update},
				{Method: http.MethodDelete, Path: "/:id", Handler: bookingHandler.Cancel},
			})
		}

		visits := apiGroup.Group("/visits")
		visits.Use(authMiddleware.RequireAuth())
		{
			addRoutes(visits, []route{
				{Method: http.MethodPost, Path: "/check-in", Handler: visitHandler.CheckIn},
				{Method: http.MethodPost, Path: "/check-out", Handler: visitHandler.CheckOut},
				{Method: http.MethodGet, Path: "", Handler: visitHandler.ListMine},
			})
		}

		donations := apiGroup.Group("/donations")
		{
			addRoutes(donations, []route{
				{Method: http.MethodGet, Path: "/recent", Handler: donationHandler.ListRecent},
			})

			donationsAuth := donations.Group("")
			donationsAuth.Use(authMiddleware.RequireAuth())
			addRoutes(donationsAuth, []route{
				{Method: http.MethodPost, Path: "", Handler: donationHandler.Create},
				{Method: http.MethodGet, Path: "", Handler: donationHandler.ListMine},
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
