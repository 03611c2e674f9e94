package set_availability

import (
	"time"

	"github.com/m04kA/SMC-ClinicBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	setAvailability "github.com/m04kA/SMC-ClinicBooking/internal/usecase/set_availability"
	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

// SetAvailabilityRequest HTTP request model
type SetAvailabilityRequest struct {
	Date      string            `json:"date" validate:"required,datetime=2006-01-02"` // "2025-10-15"
	TimeSlots []TimeSlotRequest `json:"time_slots" validate:"required,min=1,max=96,dive"`
}

// TimeSlotRequest окно приема
type TimeSlotRequest struct {
	StartTime string `json:"start_time" validate:"required,hhmm"` // "09:00"
	EndTime   string `json:"end_time" validate:"required,hhmm"`   // "09:30"
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date    string                   `json:"date"`
	Slots   []*handlers.SlotResponse `json:"slots"`
	Removed int64                    `json:"removed"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SetAvailabilityRequest) ToUseCaseRequest(doctorID int64, role domain.Role) (*setAvailability.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	slots := make([]domain.TimeRange, 0, len(r.TimeSlots))
	for _, s := range r.TimeSlots {
		slots = append(slots, domain.TimeRange{
			Start: types.TimeString(s.StartTime),
			End:   types.TimeString(s.EndTime),
		})
	}

	return &setAvailability.Request{
		DoctorID:  doctorID,
		Role:      role,
		Date:      date,
		TimeSlots: slots,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *setAvailability.Response) *AvailabilityResponse {
	return &AvailabilityResponse{
		Date:    resp.Date.Format(domain.DateFormat),
		Slots:   handlers.FromSlots(resp.Slots),
		Removed: resp.Removed,
	}
}
