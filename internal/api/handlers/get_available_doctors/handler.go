package get_available_doctors

import (
	"net/http"

	"github.com/m04kA/SMC-ClinicBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicBooking/internal/api/validation"
)

type Handler struct {
	service DoctorService
	perPage int
	logger  Logger
}

func NewHandler(service DoctorService, perPage int, logger Logger) *Handler {
	return &Handler{
		service: service,
		perPage: perPage,
		logger:  logger,
	}
}

// Handle GET /api/v1/doctors/available
// Query params: specialization, city, page (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := FromQuery(r.URL.Query())
	if fields := validation.Struct(&query); fields != nil {
		h.logger.Warn("GET /doctors/available - Validation failed: fields=%v", fields)
		handlers.RespondValidation(w, fields)
		return
	}

	page, err := handlers.ParsePageRequest(r, h.perPage)
	if err != nil {
		h.logger.Warn("GET /doctors/available - Invalid page: %v", err)
		handlers.RespondInvalidPage(w)
		return
	}

	result, err := h.service.ListAvailable(r.Context(), query.Specialization, query.City, page)
	if err != nil {
		h.logger.Error("GET /doctors/available - Failed to fetch doctors: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /doctors/available - Doctors retrieved: count=%d, total=%d", len(result.Items), result.Total)
	handlers.RespondSuccess(w, http.StatusOK, "", handlers.NewPaginated(result, handlers.FromDoctor))
}
