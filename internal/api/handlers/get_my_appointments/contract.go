package get_my_appointments

import (
	"context"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
)

type AppointmentService interface {
	GetPatientAppointments(ctx context.Context, patientID int64, role domain.Role, page domain.PageRequest) (*domain.Page[*domain.Appointment], error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
