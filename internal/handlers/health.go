package handlers

import (
	"net/http"

	"clinic-assistant/internal/utils"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "time": utils.FormatISOTimestamp(h.now())})
}
