package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const defaultWorkflow = "demo"

// RunWorkflow is a placeholder for workflow orchestration: nothing is
// persisted and no model is called.
func (h *Handler) RunWorkflow(c *gin.Context) {
	var data map[string]any
	if err := c.ShouldBindJSON(&data); err != nil {
		badRequest(c, "Workflow payload must be a JSON object", err)
		return
	}

	workflow, ok := data["workflow"]
	if !ok || workflow == nil {
		workflow = defaultWorkflow
	}
	c.JSON(http.StatusOK, gin.H{"workflow": workflow, "status": "simulated"})
}
