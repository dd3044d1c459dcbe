package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sidhant-sriv/rentease-api/middleware"
	"github.com/sidhant-sriv/rentease-api/services"
)

func ReviewRoutes(router *gin.Engine, reviews *services.ReviewService, auth gin.HandlerFunc) {
	reviewRoutes := router.Group("/reviews", auth)
	{
		reviewRoutes.POST("", CreateReview(reviews))
		reviewRoutes.PUT("/:id/reply", ReplyToReview(reviews))
	}
}

// CreateReview stores a review for a paid stay. It stays hidden until an
// admin approves it.
func CreateReview(reviews *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			BookingID  uint   `json:"booking_id"`
			Rating     int    `json:"rating"`
			ReviewText string `json:"review_text"`
		}
		if !bindJSON(c, &req) {
			return
		}

		r, err := reviews.Create(c.Request.Context(), middleware.GetActor(c), services.ReviewInput{
			BookingID: req.BookingID, Rating: req.Rating, ReviewText: req.ReviewText,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Review submitted for approval", "review": r})
	}
}

func ReplyToReview(reviews *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		var req struct {
			Reply string `json:"reply"`
		}
		if !bindJSON(c, &req) {
			return
		}

		r, err := reviews.Reply(c.Request.Context(), middleware.GetActor(c), id, req.Reply)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"review": r})
	}
}
