package manage_request

import (
	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	manageRequest "github.com/m04kA/SMC-ClinicBooking/internal/usecase/manage_request"
	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

// ManageRequestRequest HTTP request model
type ManageRequestRequest struct {
	Action    string  `json:"action" validate:"required,oneof=accept reject"`
	StartTime *string `json:"start_time" validate:"required_if=Action accept,omitempty,hhmm"` // "09:00"
	EndTime   *string `json:"end_time" validate:"required_if=Action accept,omitempty,hhmm"`   // "09:30"
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ManageRequestRequest) ToUseCaseRequest(doctorID int64, role domain.Role, appointmentID int64) *manageRequest.Request {
	return &manageRequest.Request{
		DoctorID:      doctorID,
		Role:          role,
		AppointmentID: appointmentID,
		Action:        domain.ManageAction(r.Action),
		StartTime:     toTimeString(r.StartTime),
		EndTime:       toTimeString(r.EndTime),
	}
}

func toTimeString(s *string) *types.TimeString {
	if s == nil {
		return nil
	}
	ts := types.TimeString(*s)
	return &ts
}
