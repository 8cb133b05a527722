package delivery

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"calvoro-backend/internal/announcer"
	"calvoro-backend/internal/appointment/store"
	"calvoro-backend/pkg/ai"
)

// AppointmentHandler handles appointment-related HTTP requests
type AppointmentHandler struct {
	store     *store.AppointmentStore
	assistant ai.AssistantService
	announcer *announcer.Announcer
	logger    *zap.Logger
}

func NewAppointmentHandler(s *store.AppointmentStore, assistant ai.AssistantService, ann *announcer.Announcer, logger *zap.Logger) *AppointmentHandler {
	return &AppointmentHandler{
		store:     s,
		assistant: assistant,
		announcer: ann,
		logger:    logger,
	}
}

// CreateAppointmentRequest represents the request body for creating an
// appointment. Every field is optional; omitted fields get defaults.
type CreateAppointmentRequest struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Location    string `json:"location"`
	Urgency     string `json:"urgency"`
	Description string `json:"description"`
}

// GetTimeline returns the full ordered collection plus its display partition
// GET /api/appointments
func (h *AppointmentHandler) GetTimeline(c *gin.Context) {
	active, finished := h.store.Timeline()
	c.JSON(http.StatusOK, gin.H{
		"appointments": h.store.List(),
		"active":       active,
		"finished":     finished,
	})
}

// CreateAppointment creates an appointment from a partial form
// POST /api/appointments
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	appt := h.store.Create(store.CreateInput{
		Title:       req.Title,
		Date:        req.Date,
		Time:        req.Time,
		Location:    req.Location,
		Urgency:     req.Urgency,
		Description: req.Description,
	})
	c.JSON(http.StatusCreated, appt)
}

// ToggleStatus flips an appointment between confirmed and upcoming.
// Unknown ids are a silent no-op by contract, so the reply is 200 either way.
// PATCH /api/appointments/:id/status
func (h *AppointmentHandler) ToggleStatus(c *gin.Context) {
	id := c.Param("id")
	changed := h.store.ToggleStatus(id)

	resp := gin.H{"changed": changed}
	if appt, ok := h.store.Get(id); ok {
		resp["appointment"] = appt
	}
	c.JSON(http.StatusOK, resp)
}

// ParseRequest represents the intake request body
type ParseRequest struct {
	Text string `json:"text" binding:"required"`
}

// ParseAppointment sends free text through natural-language intake and
// creates the resulting appointment. The new appointment is announced in the
// background, matching the assistant's speak-on-create behavior.
// POST /api/appointments/parse
func (h *AppointmentHandler) ParseAppointment(c *gin.Context) {
	var req ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ex, err := h.assistant.ParseAppointment(c.Request.Context(), req.Text)
	if err != nil {
		var pf *ai.ParseFailure
		if errors.As(err, &pf) {
			h.logger.Warn("intake parse failed", zap.Error(err))
			// Echo the input so the client can offer a retry with it intact.
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": pf.Message,
				"text":  req.Text,
			})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	appt := h.store.Create(store.CreateInput{
		Title:       ex.Title,
		Date:        ex.Date,
		Time:        ex.Time,
		Location:    ex.Location,
		Urgency:     ex.Urgency,
		Description: ex.Description,
	})

	// Best-effort; the creation response does not wait for playback.
	go h.announcer.Announce(appt)

	c.JSON(http.StatusCreated, appt)
}

// Announce speaks a reminder for one appointment. The call suspends until
// playback finishes; a concurrent announcement yields "dropped".
// POST /api/appointments/:id/announce
func (h *AppointmentHandler) Announce(c *gin.Context) {
	appt, ok := h.store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
		return
	}

	result := h.announcer.Announce(appt)
	c.JSON(http.StatusOK, gin.H{"result": result})
}

// SuggestReschedule generates the reschedule-banner message for an
// appointment that was missed.
// GET /api/appointments/:id/reschedule
func (h *AppointmentHandler) SuggestReschedule(c *gin.Context) {
	appt, ok := h.store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
		return
	}

	suggestion, err := h.assistant.SuggestReschedule(c.Request.Context(), appt.Title)
	if err != nil {
		h.logger.Warn("reschedule suggestion failed",
			zap.String("appointment", appt.ID), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not generate a suggestion"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestion": suggestion})
}
