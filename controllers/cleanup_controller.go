package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/driftroom/backend/jobs"
)

// TriggerCleanup godoc
// @Summary Trigger an expiry sweep
// @Description Purges expired files and rooms immediately; meant for external schedulers, the server also sweeps on its own timer
// @Tags cleanup
// @Produce json
// @Success 200 {object} map[string]bool "Sweep completed"
// @Router /api/cleanup [post]
func TriggerCleanup(c *gin.Context) {
	jobs.Sweep()
	c.JSON(http.StatusOK, gin.H{"success": true})
}
