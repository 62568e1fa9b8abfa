package handlers

import (
	"errors"
	"net/http"

	"clinic-assistant/internal/models"
	"clinic-assistant/internal/triage"

	"github.com/gin-gonic/gin"
)

type TriageRequest struct {
	PatientID *uint  `json:"patient_id" binding:"required"`
	Symptoms  string `json:"symptoms" binding:"required"`
}

// Triage asks the model directly, with no conversation history. Provider
// trouble never fails the request: a missing configuration yields the
// safety fallback and a failed call yields a degraded message.
func (h *Handler) Triage(c *gin.Context) {
	req, ok := h.beginTriage(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	patientID := *req.PatientID

	text, err := h.triage.Complete(ctx, req.Symptoms)
	switch {
	case errors.Is(err, triage.ErrNotConfigured):
		text = triage.FallbackText
	case err != nil:
		h.logger.Warn().Err(err).Uint("patient_id", patientID).Msg("direct triage provider call failed")
		text = triage.DegradedText(err)
	}

	if !h.recordAssistant(c, patientID, text) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"triage": text})
}

// TriageChain runs the memory-backed chain. A failed chain call is degraded
// the same way as in Triage; used_chain reports whether the chain ran.
func (h *Handler) TriageChain(c *gin.Context) {
	req, ok := h.beginTriage(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	patientID := *req.PatientID

	var (
		text      string
		usedChain bool
	)
	chain, err := h.triage.NewChain()
	switch {
	case errors.Is(err, triage.ErrNotConfigured):
		text = triage.FallbackText
	case err != nil:
		h.logger.Warn().Err(err).Uint("patient_id", patientID).Msg("triage chain unavailable")
		text = triage.DegradedText(err)
	default:
		usedChain = true
		text, err = chain.Run(ctx, req.Symptoms)
		if err != nil {
			h.logger.Warn().Err(err).Uint("patient_id", patientID).Msg("triage chain call failed")
			text = triage.DegradedText(err)
		} else {
			triage.PersistTranscript(ctx, h.store, patientID, chain.Transcript(ctx), h.logger)
		}
	}

	if !h.recordAssistant(c, patientID, text) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"triage": text, "used_chain": usedChain})
}

// beginTriage binds the request and records the patient's symptoms.
func (h *Handler) beginTriage(c *gin.Context) (TriageRequest, bool) {
	var req TriageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid triage payload", err)
		return req, false
	}
	if !h.requirePatient(c, *req.PatientID) {
		return req, false
	}
	turn := models.ConversationTurn{PatientID: *req.PatientID, Role: models.RoleUser, Content: req.Symptoms}
	if err := h.store.AppendTurns(c.Request.Context(), turn); err != nil {
		h.storageFailure(c, "Failed to record symptoms", err)
		return req, false
	}
	return req, true
}

func (h *Handler) recordAssistant(c *gin.Context, patientID uint, text string) bool {
	turn := models.ConversationTurn{PatientID: patientID, Role: models.RoleAssistant, Content: text}
	if err := h.store.AppendTurns(c.Request.Context(), turn); err != nil {
		h.storageFailure(c, "Failed to record triage response", err)
		return false
	}
	return true
}
