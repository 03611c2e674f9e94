package domain

import (
	"sort"
	"strings"
)

// FieldErrors ошибки валидации по ключу поля запроса (например, "time_slots.0.end_time")
type FieldErrors map[string][]string

// Add добавляет сообщение к полю
func (f FieldErrors) Add(field, message string) {
	f[field] = append(f[field], message)
}

// Empty возвращает true, если ошибок нет
func (f FieldErrors) Empty() bool {
	return len(f) == 0
}

// ValidationError ошибка валидации с детализацией по полям
// Unwrap возвращает sentinel-ошибку слоя, в котором проверка не прошла
type ValidationError struct {
	Err    error
	Fields FieldErrors
}

// NewValidationError создает ошибку валидации для одного поля
func NewValidationError(sentinel error, field, message string) *ValidationError {
	fields := FieldErrors{}
	fields.Add(field, message)
	return &ValidationError{Err: sentinel, Fields: fields}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], ", "))
	}
	return e.Err.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
