package doctors

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
)

// DoctorRepository интерфейс справочника врачей
type DoctorRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.Doctor, error)
	ListAvailable(ctx context.Context, filter domain.AvailableDoctorsFilter, page domain.PageRequest) ([]*domain.Doctor, int, error)
	ListAvailableOnDate(ctx context.Context, filter domain.AvailableDoctorsFilter) ([]*domain.Doctor, error)
}

// AvailabilityRepository интерфейс репозитория слотов
type AvailabilityRepository interface {
	ListFreeByDoctors(ctx context.Context, doctorIDs []int64, fromDate time.Time, onDate *time.Time) ([]*domain.AvailabilitySlot, error)
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
