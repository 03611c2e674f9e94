package cancel_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ClinicBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicBooking/internal/api/middleware"
	"github.com/m04kA/SMC-ClinicBooking/internal/service/appointments"
)

const (
	msgCancelled            = "Appointment cancelled successfully"
	msgInvalidAppointmentID = "Invalid appointment ID"
	msgMissingUser          = "Unauthenticated"
	msgAppointmentNotFound  = "Appointment not found"
	msgAlreadyCancelled     = "Appointment is already cancelled"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments/{id}/cancel
// Отменить может пациент или врач записи, для остальных запись не существует
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /appointments/{id}/cancel - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments/{id}/cancel - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	appointment, err := h.service.Cancel(r.Context(), appointmentID, userID)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("POST /appointments/{id}/cancel - Appointment not found: appointment_id=%d, user_id=%d",
				appointmentID, userID)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, appointments.ErrAlreadyCancelled):
			h.logger.Warn("POST /appointments/{id}/cancel - Already cancelled: appointment_id=%d", appointmentID)
			handlers.RespondBadRequest(w, msgAlreadyCancelled)

		default:
			h.logger.Error("POST /appointments/{id}/cancel - Failed to cancel appointment: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/{id}/cancel - Appointment cancelled: appointment_id=%d, user_id=%d",
		appointmentID, userID)
	handlers.RespondSuccess(w, http.StatusOK, msgCancelled, handlers.FromAppointment(appointment))
}
