package set_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
)

// AvailabilityRepository интерфейс репозитория слотов
type AvailabilityRepository interface {
	ListByDoctorAndDate(ctx context.Context, doctorID int64, date time.Time) ([]*domain.AvailabilitySlot, error)
	SoftDeleteByDoctorAndDate(ctx context.Context, doctorID int64, date time.Time) (int64, error)
	CreateBatch(ctx context.Context, slots []*domain.AvailabilitySlot) ([]*domain.AvailabilitySlot, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	CountLiveByAvailabilityIDs(ctx context.Context, availabilityIDs []int64) (int, error)
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
