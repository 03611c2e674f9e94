package manage_request

import (
	"strings"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

// validateRequest проверяет действие и, для accept, время приема
func validateRequest(req *Request) error {
	fields := domain.FieldErrors{}

	if req.AppointmentID <= 0 {
		fields.Add("id", "The appointment id must be a positive integer.")
	}

	if !req.Action.IsValid() {
		fields.Add("action", "The selected action is invalid.")
	}

	if req.Action == domain.ActionAccept {
		startOK := validateTime(fields, "start_time", req.StartTime)
		endOK := validateTime(fields, "end_time", req.EndTime)
		if startOK && endOK && !req.EndTime.IsAfter(*req.StartTime) {
			fields.Add("end_time", "The end time must be a time after start time.")
		}
	}

	if !fields.Empty() {
		return &domain.ValidationError{Err: ErrInvalidInput, Fields: fields}
	}
	return nil
}

// validateTime проверяет наличие и формат HH:MM
func validateTime(fields domain.FieldErrors, key string, value *types.TimeString) bool {
	label := strings.ReplaceAll(key, "_", " ")
	if value == nil || value.IsZero() {
		fields.Add(key, "The "+label+" field is required when action is accept.")
		return false
	}
	if err := value.Validate(); err != nil {
		fields.Add(key, "The "+label+" does not match the format H:i.")
		return false
	}
	return true
}
