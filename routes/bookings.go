package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sidhant-sriv/rentease-api/middleware"
	"github.com/sidhant-sriv/rentease-api/reports"
	"github.com/sidhant-sriv/rentease-api/services"
)

// BookingRoutes sets up the tenant-facing booking routes.
func BookingRoutes(router *gin.Engine, bookings *services.BookingService, auth gin.HandlerFunc) {
	bookingRoutes := router.Group("/bookings", auth)
	{
		bookingRoutes.POST("", CreateBooking(bookings))
		bookingRoutes.GET("", GetTenantBookings(bookings))
		bookingRoutes.PUT("/:id", UpdateBookingStatus(bookings))
		bookingRoutes.DELETE("/:id", CancelBooking(bookings))
	}
}

// LandlordRoutes sets up the landlord dashboard routes.
func LandlordRoutes(router *gin.Engine, bookings *services.BookingService, reporter *reports.Reporter, auth gin.HandlerFunc) {
	landlordRoutes := router.Group("/landlord", auth)
	{
		landlordRoutes.GET("/bookings", GetLandlordBookings(bookings))
		landlordRoutes.GET("/earnings", GetLandlordEarnings(reporter))
	}
}

// CreateBooking requests a stay; the booking starts out pending.
func CreateBooking(bookings *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			TenantID   uint   `json:"tenant_id"`
			PropertyID uint   `json:"property_id"`
			StartDate  string `json:"start_date"`
			EndDate    string `json:"end_date"`
		}
		if !bindJSON(c, &req) {
			return
		}

		b, err := bookings.Create(c.Request.Context(), middleware.GetActor(c), services.BookingInput{
			TenantID: req.TenantID, PropertyID: req.PropertyID, StartDate: req.StartDate, EndDate: req.EndDate,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Booking request submitted", "booking": b})
	}
}

// GetTenantBookings lists a tenant's bookings (?tenant_id=, default the caller).
func GetTenantBookings(bookings *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID, ok := uintQuery(c, "tenant_id")
		if !ok {
			return
		}
		bs, err := bookings.ListForTenant(c.Request.Context(), middleware.GetActor(c), tenantID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"bookings": bs})
	}
}

// UpdateBookingStatus approves, rejects or re-opens a booking.
func UpdateBookingStatus(bookings *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		var req struct {
			Status string `json:"status"`
		}
		if !bindJSON(c, &req) {
			return
		}

		b, err := bookings.UpdateStatus(c.Request.Context(), middleware.GetActor(c), id, req.Status)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Booking status updated", "booking": b})
	}
}

func CancelBooking(bookings *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		b, err := bookings.Cancel(c.Request.Context(), middleware.GetActor(c), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled", "booking": b})
	}
}

// GetLandlordBookings lists bookings on a landlord's properties.
func GetLandlordBookings(bookings *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		landlordID, ok := uintQuery(c, "landlord_id")
		if !ok {
			return
		}
		bs, err := bookings.ListForLandlord(c.Request.Context(), middleware.GetActor(c), landlordID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"bookings": bs})
	}
}

func GetLandlordEarnings(reporter *reports.Reporter) gin.HandlerFunc {
	return func(c *gin.Context) {
		landlordID, ok := uintQuery(c, "landlord_id")
		if !ok {
			return
		}
		e, err := reporter.Earnings(c.Request.Context(), middleware.GetActor(c), landlordID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, e)
	}
}
