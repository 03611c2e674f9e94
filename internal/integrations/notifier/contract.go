package notifier

import (
	"context"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
)

// Sender канал доставки одного уведомления
type Sender interface {
	Send(ctx context.Context, n domain.Notification) error
	Name() string
}

// UserDirectory справочник пользователей для получения контактов
type UserDirectory interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Metrics счетчик доставленных и потерянных уведомлений
type Metrics interface {
	IncNotification(event, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
