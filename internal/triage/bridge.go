package triage

import (
	"context"
	"fmt"

	"clinic-assistant/internal/models"

	"github.com/rs/zerolog"
)

// TurnWriter persists conversation turns.
type TurnWriter interface {
	AppendTurns(ctx context.Context, turns ...models.ConversationTurn) error
}

// Turns maps a transcript onto conversation turns for patientID.
func Turns(patientID uint, t Transcript) []models.ConversationTurn {
	switch t.Kind {
	case TranscriptMessages:
		turns := make([]models.ConversationTurn, 0, len(t.Messages))
		for _, m := range t.Messages {
			role := m.Role
			if role == "" {
				role = models.RoleAssistant
			}
			turns = append(turns, models.ConversationTurn{PatientID: patientID, Role: role, Content: m.Content})
		}
		return turns
	case TranscriptText:
		return []models.ConversationTurn{{PatientID: patientID, Role: models.RoleAssistant, Content: t.Text}}
	default:
		return []models.ConversationTurn{{PatientID: patientID, Role: models.RoleAssistant, Content: fmt.Sprint(t.Raw)}}
	}
}

// PersistTranscript writes the transcript's turns and returns how many were
// stored. Failures, including panics from the writer, are logged and
// swallowed so the enclosing request still completes.
func PersistTranscript(ctx context.Context, w TurnWriter, patientID uint, t Transcript, logger zerolog.Logger) (n int) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error().
				Uint("patient_id", patientID).
				Str("panic", fmt.Sprint(r)).
				Msg("transcript persistence panicked")
			n = 0
		}
	}()

	turns := Turns(patientID, t)
	if err := w.AppendTurns(ctx, turns...); err != nil {
		logger.Warn().
			Err(err).
			Uint("patient_id", patientID).
			Str("transcript", t.Kind.String()).
			Int("turns", len(turns)).
			Msg("failed to persist transcript")
		return 0
	}
	return len(turns)
}
