package delivery

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"calvoro-backend/internal/preference/store"
)

// PreferenceHandler handles preference-related HTTP requests
type PreferenceHandler struct {
	store *store.PreferenceStore
}

func NewPreferenceHandler(s *store.PreferenceStore) *PreferenceHandler {
	return &PreferenceHandler{store: s}
}

// UpdatePreferencesRequest is a partial update; nil fields are untouched.
// The onboarding flag has no field here on purpose: it can only be set via
// the onboarding endpoint and never reset.
type UpdatePreferencesRequest struct {
	VoicePersona      *string `json:"voiceTone"`
	ReminderIntensity *string `json:"reminderIntensity"`
	DisplayName       *string `json:"name"`
}

// GetPreferences returns the current preferences
// GET /api/preferences
func (h *PreferenceHandler) GetPreferences(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Get())
}

// UpdatePreferences shallow-merges the provided fields
// PATCH /api/preferences
func (h *PreferenceHandler) UpdatePreferences(c *gin.Context) {
	var req UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prefs := h.store.Update(store.UpdateInput{
		VoicePersona:      req.VoicePersona,
		ReminderIntensity: req.ReminderIntensity,
		DisplayName:       req.DisplayName,
	})
	c.JSON(http.StatusOK, prefs)
}

// OnboardingRequest carries the display name captured by the first-run flow
type OnboardingRequest struct {
	DisplayName string `json:"name" binding:"required"`
}

// CompleteOnboarding sets the display name and the onboarding flag atomically
// POST /api/preferences/onboarding
func (h *PreferenceHandler) CompleteOnboarding(c *gin.Context) {
	var req OnboardingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.store.CompleteOnboarding(req.DisplayName))
}
