package triage

import (
	"errors"
	"fmt"
)

// FallbackText is returned to the patient whenever no provider is configured.
const FallbackText = "Fallback triage: contact your primary care provider. " +
	"If you have difficulty breathing, chest pain or severe bleeding seek emergency care."

const recommendation = "Provide a brief triage recommendation (not a diagnosis). Include next steps and urgency level."

// chainTemplate is rendered in f-string format with the symptoms and the
// buffer memory's history.
const chainTemplate = "You are a clinical assistant (non-diagnostic). Patient symptoms: {symptoms}\n" +
	"Conversation history: {history}\n" +
	recommendation

func directPrompt(symptoms string) string {
	return fmt.Sprintf("Patient symptoms: %s\n%s", symptoms, recommendation)
}

// DegradedText is the in-band reply used when the provider call fails. The
// provider's own error is shown rather than the wrapping ProviderError.
func DegradedText(err error) string {
	var pe *ProviderError
	if errors.As(err, &pe) {
		err = pe.Err
	}
	return fmt.Sprintf("(OpenAI error) Please contact your provider. Error: %v", err)
}
