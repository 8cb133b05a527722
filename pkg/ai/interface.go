package ai

import "context"

// Extraction is the structured appointment data returned by a provider.
// Title, Date, Time and Urgency are required; Location and Description may be
// empty.
type Extraction struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Location    string `json:"location,omitempty"`
	Urgency     string `json:"urgency"`
	Description string `json:"description,omitempty"`
}

// AssistantService is the interface for the external generative AI service.
// Implement this interface to add new providers (Gemini, Ollama, ...).
// Every method performs exactly one external call: no retries, no fallback
// routing, no internal timeouts.
type AssistantService interface {
	// ParseAppointment turns free text (possibly a voice transcript) into a
	// validated Extraction. Failures are *ParseFailure.
	ParseAppointment(ctx context.Context, text string) (*Extraction, error)

	// SynthesizeSpeech returns raw 16-bit 24 kHz mono PCM for the utterance,
	// spoken in the named voice. Failures are *SynthesisFailure.
	SynthesizeSpeech(ctx context.Context, utterance, voice string) ([]byte, error)

	// SuggestReschedule generates a short, kind message asking to reschedule
	// a missed appointment.
	SuggestReschedule(ctx context.Context, title string) (string, error)
}

// ProviderType represents the AI provider type
type ProviderType string

const (
	ProviderGemini ProviderType = "gemini"
	ProviderOllama ProviderType = "ollama"
	ProviderAuto   ProviderType = "auto"
)
