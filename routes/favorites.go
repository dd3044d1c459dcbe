package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sidhant-sriv/rentease-api/middleware"
	"github.com/sidhant-sriv/rentease-api/services"
)

func FavoriteRoutes(router *gin.Engine, favorites *services.FavoriteService, auth gin.HandlerFunc) {
	favoriteRoutes := router.Group("/favorites", auth)
	{
		favoriteRoutes.GET("", GetFavorites(favorites))
		favoriteRoutes.POST("/:property_id", AddFavorite(favorites))
		favoriteRoutes.DELETE("/:property_id", RemoveFavorite(favorites))
	}
}

func GetFavorites(favorites *services.FavoriteService) gin.HandlerFunc {
	return func(c *gin.Context) {
		props, err := favorites.List(c.Request.Context(), middleware.GetActor(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"favorites": props})
	}
}

func AddFavorite(favorites *services.FavoriteService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "property_id")
		if !ok {
			return
		}
		if err := favorites.Add(c.Request.Context(), middleware.GetActor(c), id); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Added to favorites"})
	}
}

func RemoveFavorite(favorites *services.FavoriteService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "property_id")
		if !ok {
			return
		}
		if err := favorites.Remove(c.Request.Context(), middleware.GetActor(c), id); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Removed from favorites"})
	}
}
