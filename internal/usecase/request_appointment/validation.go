package request_appointment

import (
	"unicode/utf8"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
)

// validateRequest проверяет идентификаторы и длину комментария
func validateRequest(req *Request) error {
	fields := domain.FieldErrors{}

	if req.DoctorID <= 0 {
		fields.Add("doctor_id", "The doctor id field is required.")
	}
	if req.AvailabilityID <= 0 {
		fields.Add("availability_id", "The availability id field is required.")
	}
	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		fields.Add("notes", "The notes may not be greater than 1000 characters.")
	}

	if !fields.Empty() {
		return &domain.ValidationError{Err: ErrInvalidInput, Fields: fields}
	}
	return nil
}
