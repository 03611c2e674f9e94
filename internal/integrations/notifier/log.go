package notifier

import (
	"context"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
)

// LogSender пишет уведомления в лог, используется по умолчанию
type LogSender struct {
	logger Logger
}

func NewLogSender(logger Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Name() string { return "log" }

func (s *LogSender) Send(_ context.Context, n domain.Notification) error {
	s.logger.Info("Notification %s: patient=%d doctor=%d appointment=%d on %s %s-%s",
		n.Event, n.PatientID, n.DoctorID, n.AppointmentID, n.AppointmentDate, n.StartTime, n.EndTime)
	return nil
}
