package console

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/parkwise/parking-client/internal/console/handler"
	"github.com/parkwise/parking-client/internal/console/middleware"
	"github.com/parkwise/parking-client/internal/core/domain"
	"github.com/parkwise/parking-client/internal/core/ports"
	"github.com/parkwise/parking-client/internal/core/service"
)

// APIs bundles the client ports the console depends on.
type APIs struct {
	Auth    ports.AuthAPI
	Booking ports.BookingAPI
	Profile ports.ProfileAPI
	Export  ports.ExportAPI
	Admin   ports.AdminAPI
	Public  ports.PublicAPI
}

// NewRouter builds the Echo instance with all console routes and their
// navigation guards registered.
func NewRouter(session ports.Session, apis APIs, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("parking_console"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(apis.Auth, session)
	userHandler := handler.NewUserHandler(apis.Booking, apis.Profile, apis.Export, apis.Public, log)
	adminHandler := handler.NewAdminHandler(apis.Admin)

	// --- Guards ---
	guestOnly := middleware.Guard(session, service.Route{GuestOnly: true})
	userOnly := middleware.Guard(session, service.Route{RequiresAuth: true, Role: domain.RoleUser})
	adminOnly := middleware.Guard(session, service.Route{RequiresAuth: true, Role: domain.RoleAdmin})
	authOnly := middleware.Guard(session, service.Route{RequiresAuth: true})

	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/session", authHandler.SessionInfo)
	e.GET("/", func(c echo.Context) error {
		state := session.State()
		if state.Authenticated {
			return c.Redirect(http.StatusFound, service.HomeFor(state.Role))
		}
		return c.Redirect(http.StatusFound, service.LoginPath)
	})

	// --- Guest routes ---
	e.GET("/login", authHandler.LoginPage, guestOnly)
	e.POST("/login", authHandler.Login, guestOnly)
	e.GET("/register", authHandler.RegisterPage, guestOnly)
	e.POST("/register", authHandler.Register, guestOnly)
	e.POST("/logout", authHandler.Logout, authOnly)

	// --- End-user routes ---
	user := e.Group("/user", userOnly)
	user.GET("", userHandler.Dashboard)
	user.POST("/bookings", userHandler.Book)
	user.POST("/bookings/:id/release", userHandler.Release)
	user.GET("/history", userHandler.History)
	user.GET("/stats", userHandler.Stats)
	user.GET("/profile", userHandler.Profile)
	user.PUT("/profile", userHandler.UpdateProfile)
	user.POST("/export", userHandler.TriggerExport)
	user.GET("/export/:id", userHandler.ExportStatus)
	user.GET("/export/:id/download", userHandler.DownloadExport)

	// --- Admin routes ---
	admin := e.Group("/admin", adminOnly)
	admin.GET("", adminHandler.Dashboard)
	admin.GET("/users", adminHandler.Users)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
	admin.GET("/lots", adminHandler.Lots)
	admin.POST("/lots", adminHandler.CreateLot)
	admin.PUT("/lots/:id", adminHandler.UpdateLot)
	admin.DELETE("/lots/:id", adminHandler.DeleteLot)
	admin.GET("/lots/:id/spots", adminHandler.LotSpots)
	admin.GET("/stats", adminHandler.Stats)

	return e
}
