package gemini_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"calvoro-backend/pkg/gemini"
)

func fakeServer(t *testing.T, handler http.HandlerFunc) *gemini.Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return gemini.NewServiceWithBaseURL("test-key", srv.URL)
}

func textReply(text string) map[string]any {
	return map[string]any{
		"candidates": []any{
			map[string]any{
				"content": map[string]any{
					"parts": []any{map[string]any{"text": text}},
				},
			},
		},
	}
}

func audioReply(data string) map[string]any {
	return map[string]any{
		"candidates": []any{
			map[string]any{
				"content": map[string]any{
					"parts": []any{
						map[string]any{"inlineData": map[string]any{
							"mimeType": "audio/L16;rate=24000",
							"data":     data,
						}},
					},
				},
			},
		},
	}
}

func TestGenerateStructured(t *testing.T) {
	var gotBody map[string]any
	svc := fakeServer(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, ":generateContent") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("request body: %v", err)
		}
		json.NewEncoder(w).Encode(textReply(`{"title":"Dentist"}`))
	})

	raw, err := svc.GenerateStructured(context.Background(), "parse this", map[string]any{"type": "OBJECT"})
	if err != nil {
		t.Fatalf("generate structured: %v", err)
	}
	if string(raw) != `{"title":"Dentist"}` {
		t.Errorf("raw = %s", raw)
	}

	cfg, _ := gotBody["generationConfig"].(map[string]any)
	if cfg == nil || cfg["responseMimeType"] != "application/json" {
		t.Errorf("request did not constrain the response to JSON: %v", gotBody)
	}
}

func TestGenerateSpeechDecodesAudio(t *testing.T) {
	pcm := []byte{0x01, 0x02, 0x03, 0x04}
	var gotBody map[string]any
	svc := fakeServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(audioReply(base64.StdEncoding.EncodeToString(pcm)))
	})

	got, err := svc.GenerateSpeech(context.Background(), "Say: hello", "Zephyr")
	if err != nil {
		t.Fatalf("generate speech: %v", err)
	}
	if !bytes.Equal(got, pcm) {
		t.Errorf("pcm = %v, want %v", got, pcm)
	}

	cfg, _ := gotBody["generationConfig"].(map[string]any)
	if cfg == nil {
		t.Fatal("no generationConfig in request")
	}
	mods, _ := cfg["responseModalities"].([]any)
	if len(mods) != 1 || mods[0] != "AUDIO" {
		t.Errorf("responseModalities = %v, want [AUDIO]", mods)
	}
}

func TestGenerateSpeechTextOnlyReplyFails(t *testing.T) {
	svc := fakeServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(textReply("I cannot produce audio right now."))
	})

	if _, err := svc.GenerateSpeech(context.Background(), "Say: hello", "Zephyr"); err == nil {
		t.Fatal("text-only reply must be an error")
	}
}

func TestGenerateSpeechBadBase64Fails(t *testing.T) {
	svc := fakeServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(audioReply("!!! not base64 !!!"))
	})

	if _, err := svc.GenerateSpeech(context.Background(), "Say: hello", "Zephyr"); err == nil {
		t.Fatal("undecodable payload must be an error")
	}
}

func TestAPIErrorIsSurfaced(t *testing.T) {
	svc := fakeServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"bad request"}}`, http.StatusBadRequest)
	})

	_, err := svc.GenerateText(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "400") {
		t.Errorf("err = %v, want the status code included", err)
	}
}
