package get_doctor_profile

import (
	"context"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
)

type DoctorService interface {
	GetProfile(ctx context.Context, userID int64) (*domain.Doctor, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
