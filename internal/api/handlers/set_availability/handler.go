package set_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ClinicBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicBooking/internal/api/middleware"
	"github.com/m04kA/SMC-ClinicBooking/internal/api/validation"
	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	setAvailability "github.com/m04kA/SMC-ClinicBooking/internal/usecase/set_availability"
)

const (
	msgUpdated            = "Availability set successfully"
	msgInvalidRequestBody = "Invalid request body"
	msgMissingUser        = "Unauthenticated"
	msgUnauthorized       = "Unauthorized access"
	msgDoctorNotFound     = "Doctor not found"
	msgAvailabilityInUse  = "Availability for this date is held by active appointments"
)

type Handler struct {
	useCase SetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase SetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/doctors/availability
// Заменяет все слоты врача на дату
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /doctors/availability - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}
	role, _ := middleware.GetRole(r.Context())

	if role != domain.RoleDoctor {
		h.logger.Warn("PATCH /doctors/availability - Unauthorized access: user_id=%d, role=%s", userID, role)
		handlers.RespondForbidden(w, msgUnauthorized)
		return
	}

	var req SetAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /doctors/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if fields := validation.Struct(&req); fields != nil {
		h.logger.Warn("PATCH /doctors/availability - Validation failed: user_id=%d, fields=%v", userID, fields)
		handlers.RespondValidation(w, fields)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID, role)
	if err != nil {
		h.logger.Warn("PATCH /doctors/availability - Failed to parse request: %v", err)
		handlers.RespondValidation(w, domain.FieldErrors{"date": {"The date is not a valid date."}})
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, setAvailability.ErrUnauthorized):
			h.logger.Warn("PATCH /doctors/availability - Unauthorized access: user_id=%d", userID)
			handlers.RespondForbidden(w, msgUnauthorized)

		case errors.Is(err, setAvailability.ErrDoctorNotFound):
			h.logger.Warn("PATCH /doctors/availability - Doctor not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgDoctorNotFound)

		case errors.Is(err, setAvailability.ErrInvalidInput):
			h.logger.Warn("PATCH /doctors/availability - Validation failed: user_id=%d, error=%v", userID, err)
			if !handlers.RespondValidationError(w, err) {
				handlers.RespondValidation(w, domain.FieldErrors{})
			}

		case errors.Is(err, setAvailability.ErrAvailabilityInUse):
			h.logger.Warn("PATCH /doctors/availability - Date has live appointments: user_id=%d, date=%s", userID, req.Date)
			handlers.RespondConflict(w, msgAvailabilityInUse)

		default:
			h.logger.Error("PATCH /doctors/availability - Failed to set availability: user_id=%d, date=%s, error=%v",
				userID, req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /doctors/availability - Availability set: user_id=%d, date=%s, slots=%d, removed=%d",
		userID, req.Date, len(result.Slots), result.Removed)
	handlers.RespondSuccess(w, http.StatusOK, msgUpdated, FromUseCaseResponse(result))
}
