package handlers

import (
	"net/http"

	"clinic-assistant/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

type CreatePatientRequest struct {
	Name     string         `json:"name" binding:"required"`
	Phone    *string        `json:"phone"`    // Optional field
	Metadata map[string]any `json:"metadata"` // Optional, stored as JSON
}

func (h *Handler) CreatePatient(c *gin.Context) {
	var req CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid patient payload", err)
		return
	}

	patient := models.Patient{
		Name:     req.Name,
		Phone:    req.Phone,
		Metadata: datatypes.JSONMap(req.Metadata),
	}
	if patient.Metadata == nil {
		patient.Metadata = datatypes.JSONMap{}
	}

	if err := h.store.CreatePatient(c.Request.Context(), &patient); err != nil {
		h.storageFailure(c, "Failed to insert patient", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": patient.ID, "name": patient.Name})
}
