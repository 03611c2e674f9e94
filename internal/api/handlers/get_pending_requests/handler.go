package get_pending_requests

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ClinicBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicBooking/internal/api/middleware"
	"github.com/m04kA/SMC-ClinicBooking/internal/service/appointments"
)

const (
	msgMissingUser  = "Unauthenticated"
	msgUnauthorized = "Unauthorized access"
)

type Handler struct {
	service AppointmentService
	perPage int
	logger  Logger
}

func NewHandler(service AppointmentService, perPage int, logger Logger) *Handler {
	return &Handler{
		service: service,
		perPage: perPage,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments/pending
// Query params: page (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /appointments/pending - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}
	role, _ := middleware.GetRole(r.Context())

	page, err := handlers.ParsePageRequest(r, h.perPage)
	if err != nil {
		h.logger.Warn("GET /appointments/pending - Invalid page: %v", err)
		handlers.RespondInvalidPage(w)
		return
	}

	result, err := h.service.GetPendingRequests(r.Context(), userID, role, page)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrUnauthorized):
			h.logger.Warn("GET /appointments/pending - Unauthorized access: user_id=%d, role=%s", userID, role)
			handlers.RespondForbidden(w, msgUnauthorized)

		default:
			h.logger.Error("GET /appointments/pending - Failed to fetch pending requests: doctor_id=%d, error=%v",
				userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointments/pending - Pending requests retrieved: doctor_id=%d, count=%d, total=%d",
		userID, len(result.Items), result.Total)
	handlers.RespondSuccess(w, http.StatusOK, "", handlers.NewPaginated(result, handlers.FromAppointment))
}
