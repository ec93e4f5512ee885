package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetHealthz reports liveness.
func GetHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
