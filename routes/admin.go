package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sidhant-sriv/rentease-api/middleware"
	"github.com/sidhant-sriv/rentease-api/models"
	"github.com/sidhant-sriv/rentease-api/repository"
	"github.com/sidhant-sriv/rentease-api/services"
)

// AdminRoutes sets up the back-office routes; every one requires the admin
// role.
func AdminRoutes(router *gin.Engine, d Deps, auth gin.HandlerFunc) {
	adminRoutes := router.Group("/admin", auth, middleware.RequireRole(models.RoleAdmin))
	{
		adminRoutes.GET("/users", GetAllUsers(d.Users))
		adminRoutes.DELETE("/users/:id", DeleteUser(d.Users))
		adminRoutes.GET("/properties", GetAllProperties(d.Properties))
		adminRoutes.GET("/bookings", GetAllBookings(d.Bookings))
		adminRoutes.PUT("/reviews/:id/approve", ApproveReview(d.Reviews))
	}
}

func GetAllUsers(users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		us, err := users.List(c.Request.Context(), middleware.GetActor(c))
		if err != nil {
			respondError(c, err)
			return
		}
		out := make([]gin.H, 0, len(us))
		for i := range us {
			out = append(out, userJSON(&us[i]))
		}
		c.JSON(http.StatusOK, gin.H{"users": out})
	}
}

// DeleteUser removes an account that owns nothing and booked nothing.
func DeleteUser(users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		if err := users.Delete(c.Request.Context(), middleware.GetActor(c), id); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
	}
}

func GetAllProperties(props *services.PropertyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ps, err := props.List(c.Request.Context(), repository.PropertyFilter{})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"properties": ps})
	}
}

func GetAllBookings(bookings *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		bs, err := bookings.ListAll(c.Request.Context(), middleware.GetActor(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"bookings": bs})
	}
}

func ApproveReview(reviews *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		r, err := reviews.Approve(c.Request.Context(), middleware.GetActor(c), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"review": r})
	}
}
