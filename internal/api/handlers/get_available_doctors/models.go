package get_available_doctors

import (
	"net/url"
)

// AvailableDoctorsQuery фильтры поиска врачей
type AvailableDoctorsQuery struct {
	Specialization *string `json:"specialization" validate:"omitempty,max=100"`
	City           *string `json:"city" validate:"omitempty,max=100"`
}

// FromQuery читает фильтры из query string, пустой параметр считается отсутствующим
func FromQuery(values url.Values) AvailableDoctorsQuery {
	return AvailableDoctorsQuery{
		Specialization: optional(values, "specialization"),
		City:           optional(values, "city"),
	}
}

func optional(values url.Values, key string) *string {
	v := values.Get(key)
	if v == "" {
		return nil
	}
	return &v
}
