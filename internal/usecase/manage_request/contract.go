package manage_request

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByIDForDoctor(ctx context.Context, id, doctorID int64) (*domain.Appointment, error)
	UpdateStatus(ctx context.Context, a *domain.Appointment) error
}

// AvailabilityRepository интерфейс репозитория слотов
type AvailabilityRepository interface {
	MarkFree(ctx context.Context, id int64) error
}

// Notifier асинхронная доставка уведомлений пациенту
type Notifier interface {
	Notify(ctx context.Context, n domain.Notification)
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
