package appointments

import "errors"

var (
	// ErrUnauthorized возвращается, когда роль не допускает операцию
	ErrUnauthorized = errors.New("unauthorized access")

	// ErrAppointmentNotFound возвращается, когда запись не найдена среди записей пользователя
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrAlreadyCancelled возвращается при повторной отмене
	ErrAlreadyCancelled = errors.New("appointment is already cancelled")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
