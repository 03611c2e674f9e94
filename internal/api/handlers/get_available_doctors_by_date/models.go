package get_available_doctors_by_date

import (
	"net/url"
	"time"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
)

// AvailableOnDateQuery параметры поиска врачей на конкретную дату
type AvailableOnDateQuery struct {
	Date           string  `json:"date" validate:"required,datetime=2006-01-02"` // "2025-10-15"
	Specialization *string `json:"specialization" validate:"omitempty,max=100"`
	City           *string `json:"city" validate:"omitempty,max=100"`
}

// FromQuery читает параметры из query string
func FromQuery(values url.Values) AvailableOnDateQuery {
	return AvailableOnDateQuery{
		Date:           values.Get("date"),
		Specialization: optional(values, "specialization"),
		City:           optional(values, "city"),
	}
}

// ParsedDate дата запроса, формат уже проверен валидатором
func (q *AvailableOnDateQuery) ParsedDate() (time.Time, error) {
	return time.Parse(domain.DateFormat, q.Date)
}

func optional(values url.Values, key string) *string {
	v := values.Get(key)
	if v == "" {
		return nil
	}
	return &v
}
