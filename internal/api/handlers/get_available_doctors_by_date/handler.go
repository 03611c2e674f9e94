package get_available_doctors_by_date

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ClinicBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicBooking/internal/api/validation"
	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/internal/service/doctors"
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

// Handle GET /api/v1/doctors/available/by-date
// Query params: date (обязательно), specialization, city
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := FromQuery(r.URL.Query())
	if fields := validation.Struct(&query); fields != nil {
		h.logger.Warn("GET /doctors/available/by-date - Validation failed: fields=%v", fields)
		handlers.RespondValidation(w, fields)
		return
	}

	date, err := query.ParsedDate()
	if err != nil {
		h.logger.Warn("GET /doctors/available/by-date - Invalid date %q: %v", query.Date, err)
		handlers.RespondValidation(w, domain.FieldErrors{"date": {"The date is not a valid date."}})
		return
	}

	result, err := h.service.ListAvailableOnDate(r.Context(), date, query.Specialization, query.City)
	if err != nil {
		switch {
		case errors.Is(err, doctors.ErrInvalidInput):
			h.logger.Warn("GET /doctors/available/by-date - Validation failed: date=%s, error=%v", query.Date, err)
			if !handlers.RespondValidationError(w, err) {
				handlers.RespondValidation(w, domain.FieldErrors{})
			}

		default:
			h.logger.Error("GET /doctors/available/by-date - Failed to fetch available doctors: date=%s, error=%v",
				query.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /doctors/available/by-date - Doctors retrieved: date=%s, count=%d", query.Date, len(result))
	handlers.RespondSuccess(w, http.StatusOK, "", handlers.FromDoctors(result))
}
