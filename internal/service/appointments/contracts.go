package appointments

import (
	"context"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByIDForParticipant(ctx context.Context, id, userID int64) (*domain.Appointment, error)
	UpdateStatus(ctx context.Context, a *domain.Appointment) error
	ListPendingByDoctor(ctx context.Context, doctorID int64, page domain.PageRequest) ([]*domain.Appointment, int, error)
	ListByPatient(ctx context.Context, patientID int64, page domain.PageRequest) ([]*domain.Appointment, int, error)
}

// AvailabilityRepository интерфейс репозитория слотов
type AvailabilityRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.AvailabilitySlot, error)
	MarkFree(ctx context.Context, id int64) error
}

// DoctorRepository справочник врачей
type DoctorRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.Doctor, error)
}

// UserRepository справочник пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
