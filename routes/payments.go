package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sidhant-sriv/rentease-api/middleware"
	"github.com/sidhant-sriv/rentease-api/services"
)

func PaymentRoutes(router *gin.Engine, payments *services.PaymentService, auth gin.HandlerFunc) {
	paymentRoutes := router.Group("/payments", auth)
	{
		paymentRoutes.POST("", CreatePayment(payments))
		paymentRoutes.GET("", GetPayments(payments))
		paymentRoutes.PUT("/:id", UpdatePaymentStatus(payments))
	}
}

// CreatePayment pays for an approved booking and activates it.
func CreatePayment(payments *services.PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			BookingID     uint    `json:"booking_id"`
			Amount        float64 `json:"amount"`
			PaymentMethod string  `json:"payment_method"`
		}
		if !bindJSON(c, &req) {
			return
		}

		p, err := payments.Create(c.Request.Context(), middleware.GetActor(c), services.PaymentInput{
			BookingID: req.BookingID, Amount: req.Amount, PaymentMethod: req.PaymentMethod,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Payment successful", "payment": p})
	}
}

// GetPayments lists the caller's payments as ?role=tenant or ?role=landlord.
func GetPayments(payments *services.PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ps, err := payments.List(c.Request.Context(), middleware.GetActor(c), c.Query("role"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"payments": ps})
	}
}

func UpdatePaymentStatus(payments *services.PaymentService) gin.HandlerFunc {
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

		p, err := payments.UpdateStatus(c.Request.Context(), middleware.GetActor(c), id, req.Status)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"payment": p})
	}
}
