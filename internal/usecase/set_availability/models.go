package set_availability

import (
	"time"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
)

// Request новое расписание врача на дату
type Request struct {
	DoctorID  int64              // ID вызывающего пользователя
	Role      domain.Role        // Роль вызывающего пользователя
	Date      time.Time          // Дата (без времени)
	TimeSlots []domain.TimeRange // Новый набор слотов, заменяет существующий
}

// Response созданные слоты
type Response struct {
	Date    time.Time
	Slots   []*domain.AvailabilitySlot
	Removed int64 // Сколько прежних слотов было снято
}
