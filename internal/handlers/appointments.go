package handlers

import (
	"fmt"
	"net/http"

	"clinic-assistant/internal/models"
	"clinic-assistant/internal/utils"

	"github.com/gin-gonic/gin"
)

type ScheduleRequest struct {
	PatientID   *uint  `json:"patient_id" binding:"required"`
	ScheduledAt string `json:"scheduled_at" binding:"required"`
	Notes       string `json:"notes"`
}

// ScheduleAppointment stores the appointment and then a system turn noting
// it. The two inserts are independent; no transaction spans them.
func (h *Handler) ScheduleAppointment(c *gin.Context) {
	var req ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid schedule payload", err)
		return
	}

	scheduledAt, err := utils.ParseISOTimestamp(req.ScheduledAt)
	if err != nil {
		badRequest(c, "scheduled_at must be ISO format", err)
		return
	}

	patientID := *req.PatientID
	if !h.requirePatient(c, patientID) {
		return
	}

	ctx := c.Request.Context()
	appt := models.Appointment{
		PatientID:   patientID,
		ScheduledAt: scheduledAt,
		Notes:       req.Notes,
	}
	if err := h.store.CreateAppointment(ctx, &appt); err != nil {
		h.storageFailure(c, "Failed to insert appointment", err)
		return
	}

	note := models.ConversationTurn{
		PatientID: patientID,
		Role:      models.RoleSystem,
		Content:   fmt.Sprintf("Scheduled appointment at %s", req.ScheduledAt),
	}
	if err := h.store.AppendTurns(ctx, note); err != nil {
		h.storageFailure(c, "Failed to record appointment note", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"appointment_id": appt.ID,
		"scheduled_at":   utils.FormatISOTimestamp(appt.ScheduledAt),
	})
}
