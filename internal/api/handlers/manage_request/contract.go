package manage_request

import (
	"context"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	manageRequest "github.com/m04kA/SMC-ClinicBooking/internal/usecase/manage_request"
)

type ManageRequestUseCase interface {
	Execute(ctx context.Context, req *manageRequest.Request) (*domain.Appointment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
