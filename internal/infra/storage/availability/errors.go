package availability

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден или удален
	ErrSlotNotFound = errors.New("availability.repository: slot not found")

	// ErrSlotAlreadyBooked возвращается, когда условное бронирование не затронуло ни одной строки
	ErrSlotAlreadyBooked = errors.New("availability.repository: slot already booked")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("availability.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("availability.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("availability.repository: failed to scan row")
)
