package manage_request

import "errors"

var (
	// ErrUnauthorized возвращается, когда заявкой управляет не врач
	ErrUnauthorized = errors.New("manage_request: unauthorized access")

	// ErrInvalidInput возвращается при некорректных входных данных (см. domain.ValidationError)
	ErrInvalidInput = errors.New("manage_request: validation failed")

	// ErrAppointmentNotFound возвращается, когда заявка не найдена среди заявок врача
	ErrAppointmentNotFound = errors.New("manage_request: appointment not found")

	// ErrNotPending возвращается, когда заявка уже обработана или отменена
	ErrNotPending = errors.New("manage_request: appointment request is no longer pending")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("manage_request: internal error")
)
