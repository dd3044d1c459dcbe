package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sidhant-sriv/rentease-api/middleware"
	"github.com/sidhant-sriv/rentease-api/models"
	"github.com/sidhant-sriv/rentease-api/services"
)

// AuthRoutes sets up registration, login and token refresh, plus the
// caller's own account endpoints.
func AuthRoutes(router *gin.Engine, users *services.UserService, auth gin.HandlerFunc) {
	router.POST("/register", Register(users))
	router.POST("/login", Login(users))
	router.POST("/refresh", RefreshToken(users))

	me := router.Group("/users/me", auth)
	{
		me.GET("", GetMe(users))
		me.PUT("/password", ChangePassword(users))
	}
}

func userJSON(u *models.User) gin.H {
	return gin.H{"id": u.ID, "name": u.Name, "email": u.Email, "role": u.Role}
}

// Register handles new user registration.
func Register(users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Name     string `json:"name"`
			Email    string `json:"email"`
			Password string `json:"password"`
			Role     string `json:"role"`
		}
		if !bindJSON(c, &req) {
			return
		}

		u, err := users.Register(c.Request.Context(), services.RegisterInput{
			Name: req.Name, Email: req.Email, Password: req.Password, Role: req.Role,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully", "user": userJSON(u)})
	}
}

// Login handles user login requests.
func Login(users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if !bindJSON(c, &req) {
			return
		}

		u, pair, err := users.Authenticate(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message":       "Login successful",
			"user":          userJSON(u),
			"access_token":  pair.AccessToken,
			"refresh_token": pair.RefreshToken,
		})
	}
}

// RefreshToken exchanges a valid refresh token for a new token pair.
func RefreshToken(users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			RefreshToken string `json:"refresh_token" binding:"required"`
		}
		if !bindJSON(c, &req) {
			return
		}

		_, pair, err := users.Refresh(c.Request.Context(), req.RefreshToken)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, pair)
	}
}

func GetMe(users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := users.Get(c.Request.Context(), middleware.GetUserID(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": userJSON(u)})
	}
}

func ChangePassword(users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			CurrentPassword string `json:"current_password"`
			NewPassword     string `json:"new_password"`
		}
		if !bindJSON(c, &req) {
			return
		}

		err := users.ChangePassword(c.Request.Context(), middleware.GetActor(c), req.CurrentPassword, req.NewPassword)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
	}
}
