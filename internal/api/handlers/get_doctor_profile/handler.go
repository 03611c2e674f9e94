package get_doctor_profile

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ClinicBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicBooking/internal/api/middleware"
	"github.com/m04kA/SMC-ClinicBooking/internal/service/doctors"
)

const (
	msgMissingUser    = "Unauthenticated"
	msgDoctorNotFound = "Doctor profile not found"
)

type Handler struct {
	service DoctorService
	logger  Logger
}

func NewHandler(service DoctorService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/doctors/profile
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /doctors/profile - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	doctor, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, doctors.ErrDoctorNotFound):
			h.logger.Warn("GET /doctors/profile - Doctor profile not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgDoctorNotFound)

		default:
			h.logger.Error("GET /doctors/profile - Failed to fetch doctor profile: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /doctors/profile - Profile retrieved: user_id=%d, slots=%d", userID, len(doctor.Availabilities))
	handlers.RespondSuccess(w, http.StatusOK, "", handlers.FromDoctor(doctor))
}
