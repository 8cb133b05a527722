package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apptDelivery "calvoro-backend/internal/appointment/delivery"
	prefDelivery "calvoro-backend/internal/preference/delivery"
)

func SetupRoutes(r *gin.Engine, apptHandler *apptDelivery.AppointmentHandler, prefHandler *prefDelivery.PreferenceHandler) {
	api := r.Group("/api")
	{
		// Health check
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Appointment routes
		appointments := api.Group("/appointments")
		{
			appointments.GET("", apptHandler.GetTimeline)
			appointments.POST("", apptHandler.CreateAppointment)
			appointments.POST("/parse", apptHandler.ParseAppointment)
			appointments.PATCH("/:id/status", apptHandler.ToggleStatus)
			appointments.POST("/:id/announce", apptHandler.Announce)
			appointments.GET("/:id/reschedule", apptHandler.SuggestReschedule)
		}

		// Preference routes
		preferences := api.Group("/preferences")
		{
			preferences.GET("", prefHandler.GetPreferences)
			preferences.PATCH("", prefHandler.UpdatePreferences)
			preferences.POST("/onboarding", prefHandler.CompleteOnboarding)
		}
	}
}
