package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sidhant-sriv/rentease-api/middleware"
	"github.com/sidhant-sriv/rentease-api/models"
	"github.com/sidhant-sriv/rentease-api/services"
)

func router(tokens *services.TokenIssuer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	authed := r.Group("/", middleware.AuthMiddleware(tokens))
	authed.GET("/me", func(c *gin.Context) {
		a := middleware.GetActor(c)
		c.JSON(http.StatusOK, gin.H{"id": a.UserID, "role": a.Role})
	})
	authed.GET("/admin", middleware.RequireRole(models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func get(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	tokens := services.NewTokenIssuer("secret", time.Hour, 2*time.Hour)
	r := router(tokens)

	pair, err := tokens.Issue(&models.User{ID: 5, Role: models.RoleLandlord})
	require.NoError(t, err)

	w := get(r, "/me", pair.AccessToken)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":5,"role":"landlord"}`, w.Body.String())

	w = get(r, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Authorization header required")

	w = get(r, "/me", pair.RefreshToken)
	assert.Equal(t, http.StatusUnauthorized, w.Code, "refresh tokens are not access tokens")

	w = get(r, "/me", "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole(t *testing.T) {
	tokens := services.NewTokenIssuer("secret", time.Hour, 2*time.Hour)
	r := router(tokens)

	tenant, err := tokens.Issue(&models.User{ID: 2, Role: models.RoleTenant})
	require.NoError(t, err)
	admin, err := tokens.Issue(&models.User{ID: 1, Role: models.RoleAdmin})
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, get(r, "/admin", tenant.AccessToken).Code)
	assert.Equal(t, http.StatusNoContent, get(r, "/admin", admin.AccessToken).Code)
}
