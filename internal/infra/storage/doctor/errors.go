package doctor

import "errors"

var (
	// ErrDoctorNotFound возвращается, когда профиль врача не найден
	ErrDoctorNotFound = errors.New("doctor.repository: doctor not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("doctor.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("doctor.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("doctor.repository: failed to scan row")
)
