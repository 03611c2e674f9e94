package request_appointment

import "errors"

var (
	// ErrUnauthorized возвращается, когда запись создает не пациент
	ErrUnauthorized = errors.New("request_appointment: unauthorized access")

	// ErrInvalidInput возвращается при некорректных входных данных (см. domain.ValidationError)
	ErrInvalidInput = errors.New("request_appointment: validation failed")

	// ErrSlotNotFound возвращается, когда слот не существует или удален
	ErrSlotNotFound = errors.New("request_appointment: availability slot not found")

	// ErrSlotUnavailable возвращается, когда слот занят или в прошлом
	ErrSlotUnavailable = errors.New("request_appointment: slot is no longer available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("request_appointment: internal error")
)
