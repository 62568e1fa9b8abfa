package handlers

import (
	"context"
	"net/http"
	"time"

	"clinic-assistant/internal/models"
	"clinic-assistant/internal/triage"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Store is the persistence surface the handlers need.
type Store interface {
	CreatePatient(ctx context.Context, p *models.Patient) error
	PatientExists(ctx context.Context, id uint) (bool, error)
	CreateAppointment(ctx context.Context, a *models.Appointment) error
	LatestPrescription(ctx context.Context, patientID uint) (*models.Prescription, error)
	AppendTurns(ctx context.Context, turns ...models.ConversationTurn) error
}

// Handler serves the clinical assistant API.
type Handler struct {
	store            Store
	triage           *triage.Service
	logger           zerolog.Logger
	strictPatientIDs bool
	now              func() time.Time
}

type Option func(*Handler)

// WithStrictPatientIDs makes patient-scoped endpoints answer 404 for ids
// with no Patient row. By default patient ids are taken on trust.
func WithStrictPatientIDs(strict bool) Option {
	return func(h *Handler) { h.strictPatientIDs = strict }
}

func WithClock(now func() time.Time) Option {
	return func(h *Handler) { h.now = now }
}

func NewHandler(store Store, svc *triage.Service, logger zerolog.Logger, opts ...Option) *Handler {
	h := &Handler{
		store:  store,
		triage: svc,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RegisterRoutes mounts the health check publicly and everything else
// behind auth.
func RegisterRoutes(r gin.IRouter, h *Handler, auth gin.HandlerFunc) {
	r.GET("/health", h.Health)

	api := r.Group("", auth)
	{
		api.POST("/patient", h.CreatePatient)
		api.POST("/schedule", h.ScheduleAppointment)
		api.GET("/prescription/:patient_id", h.LatestPrescription)
		api.POST("/triage", h.Triage)
		api.POST("/triage_chain", h.TriageChain)
		api.POST("/run-workflow", h.RunWorkflow)
	}
}

// --- Error responses ---

func badRequest(c *gin.Context, message string, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"message": message, "details": err.Error()})
}

func (h *Handler) storageFailure(c *gin.Context, message string, err error) {
	_ = c.Error(err)
	h.logger.Error().Err(err).Str("path", c.FullPath()).Msg(message)
	c.JSON(http.StatusInternalServerError, gin.H{"message": message, "details": err.Error()})
}

// requirePatient enforces patient existence when strict mode is on. It
// writes the error response itself and reports whether to continue.
func (h *Handler) requirePatient(c *gin.Context, patientID uint) bool {
	if !h.strictPatientIDs {
		return true
	}
	exists, err := h.store.PatientExists(c.Request.Context(), patientID)
	if err != nil {
		h.storageFailure(c, "Database error verifying patient", err)
		return false
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"message": "Patient not found"})
		return false
	}
	return true
}
