package manage_request

import (
	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

// Request решение врача по заявке
type Request struct {
	DoctorID      int64               // ID вызывающего пользователя
	Role          domain.Role         // Роль вызывающего пользователя
	AppointmentID int64               // ID заявки
	Action        domain.ManageAction // accept | reject
	StartTime     *types.TimeString   // Обязательно для accept
	EndTime       *types.TimeString   // Обязательно для accept, строго позже StartTime
}
