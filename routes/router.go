// Package routes is the HTTP surface of the API.
package routes

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/sidhant-sriv/rentease-api/logger"
	"github.com/sidhant-sriv/rentease-api/middleware"
	"github.com/sidhant-sriv/rentease-api/reports"
	"github.com/sidhant-sriv/rentease-api/services"
)

// Deps is everything the handlers call into.
type Deps struct {
	Users         *services.UserService
	Properties    *services.PropertyService
	Bookings      *services.BookingService
	Payments      *services.PaymentService
	Reviews       *services.ReviewService
	Favorites     *services.FavoriteService
	Notifications *services.NotificationService
	Reports       *reports.Reporter
	Tokens        *services.TokenIssuer
	Uploader      ImageUploader
	Health        []HealthCheck
	Log           *slog.Logger
}

func NewRouter(d Deps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), logger.Middleware(d.Log))

	auth := middleware.AuthMiddleware(d.Tokens)

	SystemRoutes(router, d.Reports, d.Health)
	AuthRoutes(router, d.Users, auth)
	PropertyRoutes(router, d.Properties, d.Reviews, auth)
	BookingRoutes(router, d.Bookings, auth)
	LandlordRoutes(router, d.Bookings, d.Reports, auth)
	PaymentRoutes(router, d.Payments, auth)
	ReviewRoutes(router, d.Reviews, auth)
	FavoriteRoutes(router, d.Favorites, auth)
	NotificationRoutes(router, d.Notifications, auth)
	UploadRoutes(router, d.Uploader, auth)
	AdminRoutes(router, d, auth)

	return router
}
