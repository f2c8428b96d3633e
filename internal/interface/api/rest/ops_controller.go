package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"userinfo-service/internal/application/ports"
)

// NewOpsController registers the unauthenticated management routes.
func NewOpsController(r *gin.Engine, mirror ports.SearchSync, mode string) {
	r.GET(RouteHealth, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP"})
	})
	r.GET(RouteMetrics, gin.WrapH(promhttp.Handler()))
	r.GET(RouteSearchSync, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"pending": mirror.Pending(),
			"mode":    mode,
		})
	})
}
