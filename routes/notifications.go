package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sidhant-sriv/rentease-api/middleware"
	"github.com/sidhant-sriv/rentease-api/services"
)

func NotificationRoutes(router *gin.Engine, notifications *services.NotificationService, auth gin.HandlerFunc) {
	notificationRoutes := router.Group("/notifications", auth)
	{
		notificationRoutes.GET("", GetNotifications(notifications))
		notificationRoutes.PUT("/:id/read", MarkNotificationRead(notifications))
	}
}

func GetNotifications(notifications *services.NotificationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ns, err := notifications.List(c.Request.Context(), middleware.GetActor(c))
		if err != nil {
			respondError(c, err)
			return
		}
		unread := 0
		for _, n := range ns {
			if !n.IsRead {
				unread++
			}
		}
		c.JSON(http.StatusOK, gin.H{"notifications": ns, "unread": unread})
	}
}

func MarkNotificationRead(notifications *services.NotificationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		if err := notifications.MarkRead(c.Request.Context(), middleware.GetActor(c), id); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
	}
}
