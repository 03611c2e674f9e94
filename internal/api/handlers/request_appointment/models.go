package request_appointment

import (
	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	requestAppointment "github.com/m04kA/SMC-ClinicBooking/internal/usecase/request_appointment"
)

// RequestAppointmentRequest HTTP request model
type RequestAppointmentRequest struct {
	DoctorID       int64   `json:"doctor_id" validate:"required,gt=0"`
	AvailabilityID int64   `json:"availability_id" validate:"required,gt=0"`
	Notes          *string `json:"notes" validate:"omitempty,max=1000"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RequestAppointmentRequest) ToUseCaseRequest(patientID int64, role domain.Role) *requestAppointment.Request {
	return &requestAppointment.Request{
		PatientID:      patientID,
		Role:           role,
		DoctorID:       r.DoctorID,
		AvailabilityID: r.AvailabilityID,
		Notes:          r.Notes,
	}
}
