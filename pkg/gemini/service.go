package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"

	// gemini-2.5-flash for fast structured extraction and short text generation
	textModel = "gemini-2.5-flash"
	// Dedicated TTS model; only this one accepts the AUDIO response modality
	speechModel = "gemini-2.5-flash-preview-tts"
)

type Service struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewService(apiKey string) *Service {
	return &Service{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		client:  &http.Client{},
	}
}

// NewServiceWithBaseURL points the client at a non-default endpoint (tests, proxies).
func NewServiceWithBaseURL(apiKey, baseURL string) *Service {
	s := NewService(apiKey)
	s.baseURL = baseURL
	return s
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text,omitempty"`
}

type generationConfig struct {
	ResponseMIMEType   string         `json:"responseMimeType,omitempty"`
	ResponseSchema     map[string]any `json:"responseSchema,omitempty"`
	ResponseModalities []string       `json:"responseModalities,omitempty"`
	SpeechConfig       *speechConfig  `json:"speechConfig,omitempty"`
}

type speechConfig struct {
	VoiceConfig voiceConfig `json:"voiceConfig"`
}

type voiceConfig struct {
	PrebuiltVoiceConfig prebuiltVoiceConfig `json:"prebuiltVoiceConfig"`
}

type prebuiltVoiceConfig struct {
	VoiceName string `json:"voiceName"`
}

// generateResponse covers the part of the generateContent reply we consume.
// The response is decoded through these typed structs only, never walked as
// loose maps.
type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text       string      `json:"text"`
				InlineData *inlineData `json:"inlineData"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

func (r *generateResponse) firstText() string {
	for _, c := range r.Candidates {
		for _, p := range c.Content.Parts {
			if p.Text != "" {
				return p.Text
			}
		}
	}
	return ""
}

func (r *generateResponse) firstInlineData() *inlineData {
	for _, c := range r.Candidates {
		for _, p := range c.Content.Parts {
			if p.InlineData != nil && p.InlineData.Data != "" {
				return p.InlineData
			}
		}
	}
	return nil
}

func (s *Service) generate(ctx context.Context, model string, reqBody generateRequest) (*generateResponse, error) {
	url := s.baseURL + "/v1beta/models/" + model + ":generateContent?key=" + s.apiKey

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini API error (%d): %s", resp.StatusCode, string(respBody))
	}

	var result generateResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &result, nil
}

// GenerateStructured asks the model for a JSON reply constrained by schema and
// returns the raw JSON text. Validating the payload is the caller's job.
func (s *Service) GenerateStructured(ctx context.Context, prompt string, schema map[string]any) ([]byte, error) {
	resp, err := s.generate(ctx, textModel, generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: &generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   schema,
		},
	})
	if err != nil {
		return nil, err
	}
	text := resp.firstText()
	if text == "" {
		return nil, fmt.Errorf("no structured content returned")
	}
	return []byte(text), nil
}

// GenerateSpeech synthesizes text with a prebuilt voice and returns the
// decoded audio payload (raw 16-bit 24 kHz mono PCM). A reply carrying no
// inline audio data is an error, including text-only replies.
func (s *Service) GenerateSpeech(ctx context.Context, text, voiceName string) ([]byte, error) {
	resp, err := s.generate(ctx, speechModel, generateRequest{
		Contents: []content{{Parts: []part{{Text: text}}}},
		GenerationConfig: &generationConfig{
			ResponseModalities: []string{"AUDIO"},
			SpeechConfig: &speechConfig{
				VoiceConfig: voiceConfig{
					PrebuiltVoiceConfig: prebuiltVoiceConfig{VoiceName: voiceName},
				},
			},
		},
	})
	if err != nil {
		return nil, err
	}

	data := resp.firstInlineData()
	if data == nil {
		return nil, fmt.Errorf("no audio was generated")
	}
	pcm, err := base64.StdEncoding.DecodeString(data.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode audio payload: %w", err)
	}
	return pcm, nil
}

// GenerateText runs a plain text completion.
func (s *Service) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := s.generate(ctx, textModel, generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}
	text := resp.firstText()
	if text == "" {
		return "", fmt.Errorf("no text returned")
	}
	return text, nil
}
