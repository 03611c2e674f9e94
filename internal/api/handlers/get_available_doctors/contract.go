package get_available_doctors

import (
	"context"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
)

type DoctorService interface {
	ListAvailable(ctx context.Context, specialization, city *string, page domain.PageRequest) (*domain.Page[*domain.Doctor], error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
