package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"clinic-assistant/internal/middleware"
	"clinic-assistant/internal/models"
	"clinic-assistant/internal/triage"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

const testToken = "test-token"

var errDBDown = errors.New("connection refused")

func init() {
	gin.SetMode(gin.TestMode)
}

// memStore is an in-memory Store. failOn names a method that should fail,
// on every call or only on call number failCall.
type memStore struct {
	mu            sync.Mutex
	patients      []models.Patient
	appointments  []models.Appointment
	prescriptions []models.Prescription
	turns         []models.ConversationTurn
	calls         int
	failOn        string
	failCall      int
	opCalls       int
}

func (s *memStore) fail(op string) bool {
	if s.failOn != op {
		return false
	}
	s.opCalls++
	return s.failCall == 0 || s.opCalls == s.failCall
}

func (s *memStore) CreatePatient(_ context.Context, p *models.Patient) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.fail("CreatePatient") {
		return errDBDown
	}
	p.ID = uint(len(s.patients) + 1)
	s.patients = append(s.patients, *p)
	return nil
}

func (s *memStore) PatientExists(_ context.Context, id uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.fail("PatientExists") {
		return false, errDBDown
	}
	for _, p := range s.patients {
		if p.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) CreateAppointment(_ context.Context, a *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.fail("CreateAppointment") {
		return errDBDown
	}
	a.ID = uint(len(s.appointments) + 1)
	a.CreatedAt = time.Now()
	s.appointments = append(s.appointments, *a)
	return nil
}

func (s *memStore) LatestPrescription(_ context.Context, patientID uint) (*models.Prescription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.fail("LatestPrescription") {
		return nil, errDBDown
	}
	var latest *models.Prescription
	for i := range s.prescriptions {
		rx := s.prescriptions[i]
		if rx.PatientID != patientID {
			continue
		}
		if latest == nil || rx.CreatedAt.After(latest.CreatedAt) {
			latest = &rx
		}
	}
	return latest, nil
}

func (s *memStore) AppendTurns(_ context.Context, turns ...models.ConversationTurn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.fail("AppendTurns") {
		return errDBDown
	}
	s.turns = append(s.turns, turns...)
	return nil
}

func (s *memStore) roles() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.turns))
	for _, t := range s.turns {
		out = append(out, t.Role)
	}
	return out
}

// fakeModel is an llms.Model returning a canned reply or error.
type fakeModel struct {
	reply string
	err   error
	calls int
}

func (f *fakeModel) GenerateContent(context.Context, []llms.MessageContent, ...llms.CallOption) (*llms.ContentResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: f.reply}}}, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

var configuredCreds = triage.Credentials{
	Endpoint:   "https://clinic.openai.azure.com",
	APIKey:     "key",
	Deployment: "triage",
}

func unconfiguredService() *triage.Service {
	return triage.NewService(triage.Credentials{})
}

func modelService(m llms.Model) *triage.Service {
	return triage.NewService(configuredCreds, triage.WithModelFactory(func(triage.Credentials) (llms.Model, error) {
		return m, nil
	}))
}

func routerFor(h *Handler) *gin.Engine {
	r := gin.New()
	RegisterRoutes(r, h, middleware.BearerAuth(testToken))
	return r
}

func newRouter(store *memStore, svc *triage.Service, opts ...Option) *gin.Engine {
	return routerFor(NewHandler(store, svc, zerolog.Nop(), opts...))
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+testToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body=%s", w.Body.String())
	}
	return w, out
}
