package set_availability

import "errors"

var (
	// ErrUnauthorized возвращается, когда расписание меняет не врач
	ErrUnauthorized = errors.New("set_availability: unauthorized access")

	// ErrDoctorNotFound возвращается, когда у пользователя нет профиля врача
	ErrDoctorNotFound = errors.New("set_availability: doctor profile not found")

	// ErrInvalidInput возвращается при некорректных входных данных (см. domain.ValidationError)
	ErrInvalidInput = errors.New("set_availability: validation failed")

	// ErrAvailabilityInUse возвращается, когда на дату есть слоты с живыми записями
	ErrAvailabilityInUse = errors.New("set_availability: date has slots held by live appointments")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("set_availability: internal error")
)
