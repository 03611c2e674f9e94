package domain

import (
	"time"

	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

// NotificationEvent тип события для пациента
type NotificationEvent string

const (
	EventAppointmentAccepted NotificationEvent = "appointment_accepted"
)

// Notification событие, доставляемое асинхронно после фиксации транзакции
type Notification struct {
	Event           NotificationEvent `json:"event"`
	AppointmentID   int64             `json:"appointment_id"`
	PatientID       int64             `json:"patient_id"`
	DoctorID        int64             `json:"doctor_id"`
	AppointmentDate string            `json:"appointment_date"`
	StartTime       types.TimeString  `json:"start_time"`
	EndTime         types.TimeString  `json:"end_time"`
	OccurredAt      time.Time         `json:"occurred_at"`
}

// NewAppointmentAcceptedNotification событие принятия заявки
func NewAppointmentAcceptedNotification(a *Appointment, now time.Time) Notification {
	return Notification{
		Event:           EventAppointmentAccepted,
		AppointmentID:   a.ID,
		PatientID:       a.PatientID,
		DoctorID:        a.DoctorID,
		AppointmentDate: a.AppointmentDate.Format(DateFormat),
		StartTime:       a.StartTime,
		EndTime:         a.EndTime,
		OccurredAt:      now,
	}
}
