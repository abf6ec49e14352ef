package handlers

import (
	"net/http"

	"homeserve/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler handles GET /health from the last background snapshot.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	if !status.Healthy() {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{"success": status.Healthy(), "status": status})
}
