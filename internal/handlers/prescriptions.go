package handlers

import (
	"net/http"
	"strconv"

	"clinic-assistant/internal/utils"

	"github.com/gin-gonic/gin"
)

// LatestPrescription returns the newest prescription for the patient, or
// {"prescription": null} when there is none.
func (h *Handler) LatestPrescription(c *gin.Context) {
	patientID, err := strconv.ParseUint(c.Param("patient_id"), 10, 32)
	if err != nil {
		badRequest(c, "Invalid patient ID format", err)
		return
	}

	if !h.requirePatient(c, uint(patientID)) {
		return
	}

	rx, err := h.store.LatestPrescription(c.Request.Context(), uint(patientID))
	if err != nil {
		h.storageFailure(c, "Database error fetching prescription", err)
		return
	}
	if rx == nil {
		c.JSON(http.StatusOK, gin.H{"prescription": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"medication":   rx.Medication,
		"instructions": rx.Instructions,
		"created_at":   utils.FormatISOTimestamp(rx.CreatedAt),
	})
}
