package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vetiver/internal/shared/version"
)

// SystemHandler serves liveness and build information endpoints.
type SystemHandler struct{}

func NewSystemHandler() *SystemHandler {
	return &SystemHandler{}
}

// HealthCheck handles GET /health
func (h *SystemHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "vetiver",
	})
}

// Version handles GET /version to return the current application version
func (h *SystemHandler) Version(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version": version.Current,
	})
}
