package delivery_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	api "calvoro-backend/cmd/api"
	"calvoro-backend/internal/announcer"
	apptDelivery "calvoro-backend/internal/appointment/delivery"
	"calvoro-backend/internal/appointment/domain"
	apptStore "calvoro-backend/internal/appointment/store"
	prefDelivery "calvoro-backend/internal/preference/delivery"
	prefStore "calvoro-backend/internal/preference/store"
	"calvoro-backend/pkg/ai"
	"calvoro-backend/pkg/audio"
	"calvoro-backend/pkg/persist"
)

// stubAssistant returns canned replies; speech always fails, which the
// announcer is expected to swallow.
type stubAssistant struct {
	extraction *ai.Extraction
	parseErr   error
}

func (s *stubAssistant) ParseAppointment(ctx context.Context, text string) (*ai.Extraction, error) {
	if s.parseErr != nil {
		return nil, s.parseErr
	}
	return s.extraction, nil
}

func (s *stubAssistant) SynthesizeSpeech(ctx context.Context, utterance, voice string) ([]byte, error) {
	return nil, &ai.SynthesisFailure{Reason: "stub"}
}

func (s *stubAssistant) SuggestReschedule(ctx context.Context, title string) (string, error) {
	return "So sorry you missed " + title + " - shall we find a new time?", nil
}

func setup(t *testing.T, assistant ai.AssistantService) (*gin.Engine, *apptStore.AppointmentStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	fs, err := persist.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("file store: %v", err)
	}
	logger := zap.NewNop()
	clock := func() time.Time { return time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC) }

	appointments := apptStore.NewWithClock(fs, logger, clock)
	preferences := prefStore.New(fs, logger)
	ann := announcer.New(assistant, audio.DiscardPlayer{}, preferences, logger)

	r := gin.New()
	api.SetupRoutes(r,
		apptDelivery.NewAppointmentHandler(appointments, assistant, ann, logger),
		prefDelivery.NewPreferenceHandler(preferences),
	)
	return r, appointments
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateAppointmentDefaults(t *testing.T) {
	r, _ := setup(t, &stubAssistant{})

	w := doJSON(t, r, "POST", "/api/appointments", map[string]string{"title": "Dentist"})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body)
	}

	var appt domain.Appointment
	if err := json.Unmarshal(w.Body.Bytes(), &appt); err != nil {
		t.Fatal(err)
	}
	if appt.Title != "Dentist" || appt.Date != "2024-06-01" || appt.Time != "12:00" {
		t.Errorf("defaults not applied: %+v", appt)
	}
	if appt.Urgency != domain.UrgencyMedium || appt.Status != domain.StatusUpcoming {
		t.Errorf("enum defaults not applied: %+v", appt)
	}
}

func TestTimeline(t *testing.T) {
	r, s := setup(t, &stubAssistant{})
	a := s.Create(apptStore.CreateInput{Title: "a", Date: "2024-06-02"})
	s.Create(apptStore.CreateInput{Title: "b", Date: "2024-06-03"})
	s.ToggleStatus(a.ID)

	w := doJSON(t, r, "GET", "/api/appointments", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp struct {
		Appointments []domain.Appointment `json:"appointments"`
		Active       []domain.Appointment `json:"active"`
		Finished     []domain.Appointment `json:"finished"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Appointments) != 3 { // seed + two created
		t.Errorf("appointments = %d, want 3", len(resp.Appointments))
	}
	if len(resp.Finished) != 1 || resp.Finished[0].ID != a.ID {
		t.Errorf("finished = %+v, want just the confirmed one", resp.Finished)
	}
	for i := 0; i < len(resp.Appointments)-1; i++ {
		if resp.Appointments[i].SortKey() > resp.Appointments[i+1].SortKey() {
			t.Fatalf("timeline out of order at %d", i)
		}
	}
}

func TestToggleUnknownIDIsSilent(t *testing.T) {
	r, s := setup(t, &stubAssistant{})
	before, _ := json.Marshal(s.List())

	w := doJSON(t, r, "PATCH", "/api/appointments/no-such-id/status", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 for the silent no-op", w.Code)
	}

	after, _ := json.Marshal(s.List())
	if !bytes.Equal(before, after) {
		t.Error("collection changed by a toggle of an unknown id")
	}
}

func TestToggleFlips(t *testing.T) {
	r, s := setup(t, &stubAssistant{})
	a := s.Create(apptStore.CreateInput{Title: "x"})

	w := doJSON(t, r, "PATCH", "/api/appointments/"+a.ID+"/status", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	got, _ := s.Get(a.ID)
	if got.Status != domain.StatusConfirmed {
		t.Errorf("status = %q, want confirmed", got.Status)
	}
}

func TestParseCreatesAppointment(t *testing.T) {
	assistant := &stubAssistant{extraction: &ai.Extraction{
		Title:   "Dentist",
		Date:    "2024-06-10",
		Time:    "15:30",
		Urgency: "high",
	}}
	r, s := setup(t, assistant)

	w := doJSON(t, r, "POST", "/api/appointments/parse", map[string]string{"text": "dentist next monday at half past three"})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body)
	}

	var appt domain.Appointment
	if err := json.Unmarshal(w.Body.Bytes(), &appt); err != nil {
		t.Fatal(err)
	}
	if appt.Title != "Dentist" || appt.Date != "2024-06-10" || appt.Time != "15:30" {
		t.Errorf("created appointment = %+v", appt)
	}
	if !appt.VoiceInput {
		t.Error("voice input flag not set on intake creation")
	}
	if _, ok := s.Get(appt.ID); !ok {
		t.Error("appointment not in the store")
	}
}

func TestParseFailureKeepsInputForRetry(t *testing.T) {
	assistant := &stubAssistant{parseErr: &ai.ParseFailure{Message: ai.ParseApology}}
	r, s := setup(t, assistant)
	countBefore := len(s.List())

	w := doJSON(t, r, "POST", "/api/appointments/parse", map[string]string{"text": "mumble mumble"})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}

	var resp struct {
		Error string `json:"error"`
		Text  string `json:"text"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Error != ai.ParseApology {
		t.Errorf("error = %q, want the apology", resp.Error)
	}
	if resp.Text != "mumble mumble" {
		t.Errorf("text = %q, input not echoed for retry", resp.Text)
	}
	if len(s.List()) != countBefore {
		t.Error("a failed parse created an appointment")
	}
}

func TestParseRequiresText(t *testing.T) {
	r, _ := setup(t, &stubAssistant{})
	w := doJSON(t, r, "POST", "/api/appointments/parse", map[string]string{})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestAnnounce(t *testing.T) {
	r, s := setup(t, &stubAssistant{})
	a := s.Create(apptStore.CreateInput{Title: "Dentist"})

	// The stub's synthesis fails; the failure is swallowed per contract and
	// the caller still sees a spoken result.
	w := doJSON(t, r, "POST", "/api/appointments/"+a.ID+"/announce", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp struct {
		Result string `json:"result"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Result != string(announcer.ResultSpoken) {
		t.Errorf("result = %q, want spoken", resp.Result)
	}
}

func TestAnnounceUnknownID(t *testing.T) {
	r, _ := setup(t, &stubAssistant{})
	w := doJSON(t, r, "POST", "/api/appointments/no-such-id/announce", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestRescheduleSuggestion(t *testing.T) {
	r, s := setup(t, &stubAssistant{})
	a := s.Create(apptStore.CreateInput{Title: "Dentist"})

	w := doJSON(t, r, "GET", "/api/appointments/"+a.ID+"/reschedule", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp struct {
		Suggestion string `json:"suggestion"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Suggestion == "" {
		t.Error("empty suggestion")
	}
}
