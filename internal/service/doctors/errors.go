package doctors

import "errors"

var (
	// ErrDoctorNotFound возвращается, когда у пользователя нет профиля врача
	ErrDoctorNotFound = errors.New("doctor profile not found")

	// ErrInvalidInput возвращается при некорректных параметрах запроса (см. domain.ValidationError)
	ErrInvalidInput = errors.New("validation failed")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
