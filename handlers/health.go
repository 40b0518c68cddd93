package handlers

import (
	"net/http"

	"unisched/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the last snapshot taken by the health monitor.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	if !status.Healthy() {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, status)
}
