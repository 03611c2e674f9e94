package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
)

const (
	statusSuccess = "success"
	statusError   = "error"

	msgInternalError    = "Operation failed"
	msgValidation       = "Validation failed"
	msgInvalidPage      = "Invalid page parameter"
	msgNotFoundRoute    = "Resource not found"
	msgMethodNotAllowed = "Method not allowed"
)

var errEmptyBody = errors.New("request body is empty")

// Envelope единый формат ответа API
type Envelope struct {
	Status  string             `json:"status"`
	Message string             `json:"message,omitempty"`
	Data    interface{}        `json:"data,omitempty"`
	Errors  domain.FieldErrors `json:"errors,omitempty"`
}

// Paginated страница списка в формате, ожидаемом клиентом
type Paginated[T any] struct {
	CurrentPage int `json:"current_page"`
	Data        []T `json:"data"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
	LastPage    int `json:"last_page"`
}

// NewPaginated конвертирует доменную страницу, применяя convert к каждому элементу
func NewPaginated[D any, T any](page *domain.Page[D], convert func(D) T) Paginated[T] {
	items := make([]T, 0, len(page.Items))
	for _, item := range page.Items {
		items = append(items, convert(item))
	}
	return Paginated[T]{
		CurrentPage: page.Page,
		Data:        items,
		PerPage:     page.PerPage,
		Total:       page.Total,
		LastPage:    page.LastPage(),
	}
}

// DecodeJSON читает тело запроса в v
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil || r.Body == http.NoBody {
		return errEmptyBody
	}
	return json.NewDecoder(r.Body).Decode(v)
}

// RespondJSON пишет payload как есть
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// RespondSuccess успешный ответ в конверте
func RespondSuccess(w http.ResponseWriter, status int, message string, data interface{}) {
	RespondJSON(w, status, Envelope{
		Status:  statusSuccess,
		Message: message,
		Data:    data,
	})
}

// RespondError ответ с ошибкой в конверте
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, Envelope{
		Status:  statusError,
		Message: message,
	})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, message)
}

// RespondValidation 422 с ошибками по полям
func RespondValidation(w http.ResponseWriter, fields domain.FieldErrors) {
	RespondJSON(w, http.StatusUnprocessableEntity, Envelope{
		Status:  statusError,
		Message: msgValidation,
		Errors:  fields,
	})
}

// RespondValidationError отвечает 422, если err содержит domain.ValidationError
func RespondValidationError(w http.ResponseWriter, err error) bool {
	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		return false
	}
	RespondValidation(w, vErr.Fields)
	return true
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// NotFoundHandler ответ для неизвестных маршрутов
func NotFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		RespondNotFound(w, msgNotFoundRoute)
	})
}

// MethodNotAllowedHandler ответ для известного пути с неподдерживаемым методом
func MethodNotAllowedHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		RespondError(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
	})
}

// ParsePageRequest читает ?page=N, размер страницы задается конфигурацией
func ParsePageRequest(r *http.Request, perPage int) (domain.PageRequest, error) {
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return domain.PageRequest{}, err
		}
		page = parsed
	}
	return domain.NewPageRequest(page, perPage), nil
}

// RespondInvalidPage 400 для нечислового номера страницы
func RespondInvalidPage(w http.ResponseWriter) {
	RespondBadRequest(w, msgInvalidPage)
}
