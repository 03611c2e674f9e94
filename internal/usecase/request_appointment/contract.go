package request_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
)

// AvailabilityRepository интерфейс репозитория слотов
type AvailabilityRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.AvailabilitySlot, error)
	MarkBooked(ctx context.Context, id int64) error
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
}

// DoctorRepository интерфейс справочника врачей
type DoctorRepository interface {
	Exists(ctx context.Context, userID int64) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
