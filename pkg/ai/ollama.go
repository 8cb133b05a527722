package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"
)

// OllamaService implements AssistantService using an Ollama local LLM.
// It has no audio modality, so SynthesizeSpeech always fails.
type OllamaService struct {
	baseURL string
	model   string
	client  *http.Client
}

// NewOllamaService creates a new Ollama service
func NewOllamaService(baseURL, model string) *OllamaService {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = "llama3"
	}
	return &OllamaService{
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{},
	}
}

func (o *OllamaService) ParseAppointment(ctx context.Context, text string) (*Extraction, error) {
	currentDate := time.Now().Format("2006-01-02")
	prompt := fmt.Sprintf(`You are an appointment intake assistant. Today is %s.
Extract the appointment details from the user input below and reply with ONLY a JSON object, no prose, no code fences:
{"title": string, "date": "YYYY-MM-DD", "time": "HH:mm", "location": string (optional), "urgency": one of "low"|"medium"|"high"|"urgent", "description": string (optional)}

User input: %q`, currentDate, text)

	raw, err := o.generate(ctx, prompt)
	if err != nil {
		return nil, &ParseFailure{Message: ParseApology, Err: err}
	}
	return DecodeExtraction(stripCodeFences(raw))
}

func (o *OllamaService) SynthesizeSpeech(ctx context.Context, utterance, voice string) ([]byte, error) {
	return nil, &SynthesisFailure{Reason: "ollama has no audio modality"}
}

func (o *OllamaService) SuggestReschedule(ctx context.Context, title string) (string, error) {
	prompt := fmt.Sprintf("The user missed an appointment for %q. Suggest a kind, brief voice message asking to reschedule. Reply with the message only.", title)
	raw, err := o.generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	return string(bytes.TrimSpace(raw)), nil
}

func (o *OllamaService) generate(ctx context.Context, prompt string) ([]byte, error) {
	url := o.baseURL + "/api/generate"

	payload := map[string]interface{}{
		"model":  o.model,
		"prompt": prompt,
		"stream": false,
		"options": map[string]interface{}{
			"temperature": 0.2,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ollama request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama API error (%d): %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Response string `json:"response"`
		Done     bool   `json:"done"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return []byte(result.Response), nil
}

var codeFenceRe = regexp.MustCompile("(?s)```(?:json)?(.*?)```")

// stripCodeFences unwraps replies that ignore the no-fences instruction.
func stripCodeFences(raw []byte) []byte {
	if m := codeFenceRe.FindSubmatch(raw); m != nil {
		return bytes.TrimSpace(m[1])
	}
	return bytes.TrimSpace(raw)
}
