package get_available_doctors_by_date

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
)

type DoctorService interface {
	ListAvailableOnDate(ctx context.Context, date time.Time, specialization, city *string) ([]*domain.Doctor, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
