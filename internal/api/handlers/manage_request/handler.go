package manage_request

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ClinicBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicBooking/internal/api/middleware"
	"github.com/m04kA/SMC-ClinicBooking/internal/api/validation"
	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	manageRequest "github.com/m04kA/SMC-ClinicBooking/internal/usecase/manage_request"
)

const (
	msgAccepted             = "Appointment request accepted successfully"
	msgRejected             = "Appointment request rejected successfully"
	msgInvalidAppointmentID = "Invalid appointment ID"
	msgInvalidRequestBody   = "Invalid request body"
	msgMissingUser          = "Unauthenticated"
	msgUnauthorized         = "Unauthorized access"
	msgAppointmentNotFound  = "Appointment not found"
	msgNotPending           = "Request is no longer pending"
)

type Handler struct {
	useCase ManageRequestUseCase
	logger  Logger
}

func NewHandler(useCase ManageRequestUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{id}/manage
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/manage - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /appointments/{id}/manage - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}
	role, _ := middleware.GetRole(r.Context())

	if role != domain.RoleDoctor {
		h.logger.Warn("PATCH /appointments/{id}/manage - Unauthorized access: user_id=%d, role=%s", userID, role)
		handlers.RespondForbidden(w, msgUnauthorized)
		return
	}

	var req ManageRequestRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id}/manage - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if fields := validation.Struct(&req); fields != nil {
		h.logger.Warn("PATCH /appointments/{id}/manage - Validation failed: appointment_id=%d, fields=%v", appointmentID, fields)
		handlers.RespondValidation(w, fields)
		return
	}

	appointment, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID, role, appointmentID))
	if err != nil {
		switch {
		case errors.Is(err, manageRequest.ErrUnauthorized):
			h.logger.Warn("PATCH /appointments/{id}/manage - Unauthorized access: user_id=%d", userID)
			handlers.RespondForbidden(w, msgUnauthorized)

		case errors.Is(err, manageRequest.ErrInvalidInput):
			h.logger.Warn("PATCH /appointments/{id}/manage - Validation failed: appointment_id=%d, error=%v", appointmentID, err)
			if !handlers.RespondValidationError(w, err) {
				handlers.RespondValidation(w, domain.FieldErrors{})
			}

		case errors.Is(err, manageRequest.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/manage - Appointment not found: appointment_id=%d, doctor_id=%d",
				appointmentID, userID)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, manageRequest.ErrNotPending):
			h.logger.Warn("PATCH /appointments/{id}/manage - Request is no longer pending: appointment_id=%d", appointmentID)
			handlers.RespondBadRequest(w, msgNotPending)

		default:
			h.logger.Error("PATCH /appointments/{id}/manage - Failed to manage request: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	message := msgRejected
	if domain.ManageAction(req.Action) == domain.ActionAccept {
		message = msgAccepted
	}

	h.logger.Info("PATCH /appointments/{id}/manage - Request %sed: appointment_id=%d, doctor_id=%d",
		req.Action, appointmentID, userID)
	handlers.RespondSuccess(w, http.StatusOK, message, handlers.FromAppointment(appointment))
}
