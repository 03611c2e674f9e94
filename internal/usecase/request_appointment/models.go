package request_appointment

import "github.com/m04kA/SMC-ClinicBooking/internal/domain"

// Request запрос пациента на запись к врачу
type Request struct {
	PatientID      int64       // ID вызывающего пользователя
	Role           domain.Role // Роль вызывающего пользователя
	DoctorID       int64       // ID врача (users.id)
	AvailabilityID int64       // ID слота
	Notes          *string     // Комментарий пациента (опционально)
}
