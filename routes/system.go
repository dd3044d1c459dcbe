package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sidhant-sriv/rentease-api/reports"
)

// HealthCheck probes one dependency; a nil error means healthy.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

func SystemRoutes(router *gin.Engine, reporter *reports.Reporter, checks []HealthCheck) {
	api := router.Group("/api")
	{
		api.GET("/health", Health(checks))
		api.GET("/stats", Stats(reporter))
	}
}

// Health reports "ok" when every check passes and 503 otherwise.
func Health(checks []HealthCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status, code := "ok", http.StatusOK
		results := gin.H{}
		for _, hc := range checks {
			if err := hc.Check(ctx); err != nil {
				_ = c.Error(err)
				results[hc.Name] = "unavailable"
				status, code = "degraded", http.StatusServiceUnavailable
				continue
			}
			results[hc.Name] = "ok"
		}
		c.JSON(code, gin.H{"status": status, "checks": results})
	}
}

// Stats returns platform-wide counters.
func Stats(reporter *reports.Reporter) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := reporter.Stats(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, s)
	}
}
