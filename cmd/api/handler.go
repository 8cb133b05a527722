package api

import (
	"github.com/gin-gonic/gin"

	apptDelivery "calvoro-backend/internal/appointment/delivery"
	prefDelivery "calvoro-backend/internal/preference/delivery"
)

type Handler struct {
	engine *gin.Engine
}

func NewHandler(apptHandler *apptDelivery.AppointmentHandler, prefHandler *prefDelivery.PreferenceHandler) *Handler {
	r := gin.Default()
	SetupRoutes(r, apptHandler, prefHandler)
	return &Handler{engine: r}
}

func (h *Handler) Start(addr string) error {
	return h.engine.Run(addr)
}
