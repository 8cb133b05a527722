package ai

import (
	"context"
	"fmt"

	"calvoro-backend/pkg/gemini"
)

// extractionSchema constrains the Gemini structured reply to the intake shape.
var extractionSchema = map[string]any{
	"type": "OBJECT",
	"properties": map[string]any{
		"title": map[string]any{"type": "STRING"},
		"date":  map[string]any{"type": "STRING", "description": "YYYY-MM-DD format"},
		"time":  map[string]any{"type": "STRING", "description": "HH:mm format"},
		"location": map[string]any{
			"type": "STRING",
		},
		"urgency": map[string]any{
			"type": "STRING",
			"enum": []string{"low", "medium", "high", "urgent"},
		},
		"description": map[string]any{"type": "STRING"},
	},
	"required": []string{"title", "date", "time", "urgency"},
}

// geminiAssistant implements AssistantService on top of the Gemini HTTP client.
type geminiAssistant struct {
	svc *gemini.Service
}

// NewGeminiAssistant wraps a Gemini client as an AssistantService.
func NewGeminiAssistant(svc *gemini.Service) AssistantService {
	return &geminiAssistant{svc: svc}
}

func (g *geminiAssistant) ParseAppointment(ctx context.Context, text string) (*Extraction, error) {
	prompt := fmt.Sprintf("Parse the following user input and extract appointment details. User input: %q", text)
	raw, err := g.svc.GenerateStructured(ctx, prompt, extractionSchema)
	if err != nil {
		return nil, &ParseFailure{Message: ParseApology, Err: err}
	}
	return DecodeExtraction(raw)
}

func (g *geminiAssistant) SynthesizeSpeech(ctx context.Context, utterance, voice string) ([]byte, error) {
	// A bare "Say:" instruction keeps the TTS model in the audio modality;
	// elaborate prompts tend to come back as text and fail with a 400.
	pcm, err := g.svc.GenerateSpeech(ctx, "Say: "+utterance, voice)
	if err != nil {
		return nil, &SynthesisFailure{Reason: "speech request failed", Err: err}
	}
	if len(pcm) == 0 {
		return nil, &SynthesisFailure{Reason: "empty audio payload"}
	}
	return pcm, nil
}

func (g *geminiAssistant) SuggestReschedule(ctx context.Context, title string) (string, error) {
	prompt := fmt.Sprintf("The user missed an appointment for %q. Suggest a kind, brief voice message asking to reschedule.", title)
	return g.svc.GenerateText(ctx, prompt)
}
