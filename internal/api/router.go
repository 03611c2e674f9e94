package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/m04kA/SMC-ClinicBooking/internal/api/handlers"
	cancelAppointmentHandler "github.com/m04kA/SMC-ClinicBooking/internal/api/handlers/cancel_appointment"
	getAvailableDoctorsHandler "github.com/m04kA/SMC-ClinicBooking/internal/api/handlers/get_available_doctors"
	getAvailableDoctorsByDateHandler "github.com/m04kA/SMC-ClinicBooking/internal/api/handlers/get_available_doctors_by_date"
	getDoctorProfileHandler "github.com/m04kA/SMC-ClinicBooking/internal/api/handlers/get_doctor_profile"
	getMyAppointmentsHandler "github.com/m04kA/SMC-ClinicBooking/internal/api/handlers/get_my_appointments"
	getPendingRequestsHandler "github.com/m04kA/SMC-ClinicBooking/internal/api/handlers/get_pending_requests"
	manageRequestHandler "github.com/m04kA/SMC-ClinicBooking/internal/api/handlers/manage_request"
	requestAppointmentHandler "github.com/m04kA/SMC-ClinicBooking/internal/api/handlers/request_appointment"
	setAvailabilityHandler "github.com/m04kA/SMC-ClinicBooking/internal/api/handlers/set_availability"
	"github.com/m04kA/SMC-ClinicBooking/internal/api/middleware"
	"github.com/m04kA/SMC-ClinicBooking/pkg/metrics"
)

// Logger логгер обработчиков и access-лога
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
	Request(requestID, method, path string, status int, latency time.Duration)
}

// Handlers обработчики эндпоинтов API
type Handlers struct {
	GetAvailableDoctors       *getAvailableDoctorsHandler.Handler
	GetAvailableDoctorsByDate *getAvailableDoctorsByDateHandler.Handler
	GetDoctorProfile          *getDoctorProfileHandler.Handler
	SetAvailability           *setAvailabilityHandler.Handler
	RequestAppointment        *requestAppointmentHandler.Handler
	GetPendingRequests        *getPendingRequestsHandler.Handler
	ManageRequest             *manageRequestHandler.Handler
	GetMyAppointments         *getMyAppointmentsHandler.Handler
	CancelAppointment         *cancelAppointmentHandler.Handler
}

// Options инфраструктура роутера; Metrics == nil отключает метрики
type Options struct {
	Auth        *middleware.Authenticator
	Metrics     *metrics.Metrics
	MetricsPath string
	Logger      Logger
}

// NewRouter собирает маршруты /api/v1
func NewRouter(h Handlers, opts Options) *mux.Router {
	r := mux.NewRouter()
	r.NotFoundHandler = handlers.NotFoundHandler()
	r.MethodNotAllowedHandler = handlers.MethodNotAllowedHandler()

	r.Use(middleware.RequestID, middleware.Recovery(opts.Logger), middleware.Logging(opts.Logger))

	if opts.Metrics != nil {
		r.Use(middleware.MetricsMiddleware(opts.Metrics))
		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(opts.MetricsPath, promhttp.Handler()).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// Все маршруты API требуют bearer-токен
	protected := api.PathPrefix("").Subrouter()
	protected.Use(opts.Auth.Middleware)

	// --- Врачи ---
	protected.HandleFunc("/doctors/available", h.GetAvailableDoctors.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/doctors/available/by-date", h.GetAvailableDoctorsByDate.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/doctors/profile", h.GetDoctorProfile.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/doctors/availability", h.SetAvailability.Handle).Methods(http.MethodPatch)

	// --- Записи ---
	protected.HandleFunc("/appointments", h.RequestAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/pending", h.GetPendingRequests.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/mine", h.GetMyAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id:[0-9]+}/manage", h.ManageRequest.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{id:[0-9]+}/cancel", h.CancelAppointment.Handle).Methods(http.MethodPost)

	return r
}
