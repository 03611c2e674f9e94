package request_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ClinicBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicBooking/internal/api/middleware"
	"github.com/m04kA/SMC-ClinicBooking/internal/api/validation"
	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	requestAppointment "github.com/m04kA/SMC-ClinicBooking/internal/usecase/request_appointment"
)

const (
	msgCreated            = "Appointment request submitted successfully"
	msgInvalidRequestBody = "Invalid request body"
	msgMissingUser        = "Unauthenticated"
	msgUnauthorized       = "Unauthorized access"
	msgSlotNotFound       = "Availability slot not found"
	msgSlotUnavailable    = "Selected time slot is unavailable"
)

type Handler struct {
	useCase RequestAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase RequestAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}
	role, _ := middleware.GetRole(r.Context())

	// Роль проверяется до разбора тела
	if role != domain.RolePatient {
		h.logger.Warn("POST /appointments - Unauthorized access: user_id=%d, role=%s", userID, role)
		handlers.RespondForbidden(w, msgUnauthorized)
		return
	}

	var req RequestAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if fields := validation.Struct(&req); fields != nil {
		h.logger.Warn("POST /appointments - Validation failed: user_id=%d, fields=%v", userID, fields)
		handlers.RespondValidation(w, fields)
		return
	}

	appointment, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID, role))
	if err != nil {
		switch {
		case errors.Is(err, requestAppointment.ErrUnauthorized):
			h.logger.Warn("POST /appointments - Unauthorized access: user_id=%d", userID)
			handlers.RespondForbidden(w, msgUnauthorized)

		case errors.Is(err, requestAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Validation failed: user_id=%d, error=%v", userID, err)
			if !handlers.RespondValidationError(w, err) {
				handlers.RespondValidation(w, domain.FieldErrors{})
			}

		case errors.Is(err, requestAppointment.ErrSlotNotFound):
			h.logger.Warn("POST /appointments - Slot not found: availability_id=%d", req.AvailabilityID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, requestAppointment.ErrSlotUnavailable):
			h.logger.Warn("POST /appointments - Slot unavailable: user_id=%d, availability_id=%d", userID, req.AvailabilityID)
			handlers.RespondBadRequest(w, msgSlotUnavailable)

		default:
			h.logger.Error("POST /appointments - Failed to request appointment: user_id=%d, availability_id=%d, error=%v",
				userID, req.AvailabilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment requested: appointment_id=%d, user_id=%d, availability_id=%d",
		appointment.ID, userID, req.AvailabilityID)
	handlers.RespondSuccess(w, http.StatusCreated, msgCreated, handlers.FromAppointment(appointment))
}
