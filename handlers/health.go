package handlers

import (
	"net/http"

	"slate/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the last dependency check. Before the first check
// completes the service is assumed healthy.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	if !status.CheckedAt.IsZero() && !status.Healthy() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "services": status})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Slate", "services": status})
}
