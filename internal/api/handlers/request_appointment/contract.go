package request_appointment

import (
	"context"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	requestAppointment "github.com/m04kA/SMC-ClinicBooking/internal/usecase/request_appointment"
)

type RequestAppointmentUseCase interface {
	Execute(ctx context.Context, req *requestAppointment.Request) (*domain.Appointment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
