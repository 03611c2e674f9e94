package notifier

import (
	"context"
	"fmt"

	"github.com/go-gomail/gomail"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
)

// SMTPSender отправляет письмо пациенту, адрес берется из справочника пользователей
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
	users  UserDirectory
}

func NewSMTPSender(host string, port int, username, password, from string, users UserDirectory) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
		users:  users,
	}
}

func (s *SMTPSender) Name() string { return "smtp" }

func (s *SMTPSender) Send(ctx context.Context, n domain.Notification) error {
	user, err := s.users.GetByID(ctx, n.PatientID)
	if err != nil {
		return fmt.Errorf("%w: patient=%d: %v", ErrRecipientNotFound, n.PatientID, err)
	}
	if user.Email == "" {
		return fmt.Errorf("%w: patient=%d has no email", ErrRecipientNotFound, n.PatientID)
	}

	if err := s.dialer.DialAndSend(buildMessage(s.from, user.Email, n)); err != nil {
		return fmt.Errorf("%w: smtp: %v", ErrDeliver, err)
	}
	return nil
}

// buildMessage письмо о подтверждении записи
func buildMessage(from, to string, n domain.Notification) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Appointment confirmed")
	m.SetBody("text/plain", fmt.Sprintf(
		"Your appointment #%d has been confirmed for %s from %s to %s.",
		n.AppointmentID, n.AppointmentDate, n.StartTime, n.EndTime,
	))
	return m
}
