package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m04kA/SMC-ClinicBooking/internal/api"
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
	"github.com/m04kA/SMC-ClinicBooking/internal/config"
	appointmentRepo "github.com/m04kA/SMC-ClinicBooking/internal/infra/storage/appointment"
	availabilityRepo "github.com/m04kA/SMC-ClinicBooking/internal/infra/storage/availability"
	doctorRepo "github.com/m04kA/SMC-ClinicBooking/internal/infra/storage/doctor"
	userRepo "github.com/m04kA/SMC-ClinicBooking/internal/infra/storage/user"
	"github.com/m04kA/SMC-ClinicBooking/internal/integrations/notifier"
	appointmentsService "github.com/m04kA/SMC-ClinicBooking/internal/service/appointments"
	doctorsService "github.com/m04kA/SMC-ClinicBooking/internal/service/doctors"
	manageRequestUC "github.com/m04kA/SMC-ClinicBooking/internal/usecase/manage_request"
	requestAppointmentUC "github.com/m04kA/SMC-ClinicBooking/internal/usecase/request_appointment"
	setAvailabilityUC "github.com/m04kA/SMC-ClinicBooking/internal/usecase/set_availability"
	"github.com/m04kA/SMC-ClinicBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClinicBooking/pkg/logger"
	"github.com/m04kA/SMC-ClinicBooking/pkg/metrics"
	"github.com/m04kA/SMC-ClinicBooking/pkg/txmanager"
)

func runServer(configPath string) error {
	cfg, log, err := bootstrap(configPath)
	if err != nil {
		return err
	}
	defer log.Close()

	log.Info("Starting SMC-ClinicBooking...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := openDB(context.Background(), cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Без метрик обёртка работает как прозрачный прокси
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Репозитории
	appointments := appointmentRepo.NewRepository(wrappedDB)
	availabilities := availabilityRepo.NewRepository(wrappedDB)
	doctors := doctorRepo.NewRepository(wrappedDB)
	users := userRepo.NewRepository(wrappedDB)

	// Доставка уведомлений
	sender, err := newSender(cfg, users, log)
	if err != nil {
		return err
	}
	var notifierMetrics notifier.Metrics
	if metricsCollector != nil {
		notifierMetrics = metricsCollector
	}
	dispatcher := notifier.NewDispatcher(
		sender,
		cfg.Notifications.BufferSize,
		time.Duration(cfg.Notifications.Timeout)*time.Second,
		notifierMetrics,
		log,
	)
	log.Info("Notification dispatcher started (driver=%s, buffer=%d)", sender.Name(), cfg.Notifications.BufferSize)

	// Сервисы
	doctorSvc := doctorsService.NewService(doctors, availabilities, log)
	appointmentSvc := appointmentsService.NewService(appointments, availabilities, doctors, users, txMgr, log)

	// Use cases
	requestAppointmentUseCase := requestAppointmentUC.NewUseCase(availabilities, appointments, doctors, txMgr, log)
	manageRequestUseCase := manageRequestUC.NewUseCase(appointments, availabilities, dispatcher, txMgr, log)
	setAvailabilityUseCase := setAvailabilityUC.NewUseCase(availabilities, appointments, doctors, txMgr, log)

	// Handlers
	handlers := api.Handlers{
		GetAvailableDoctors:       getAvailableDoctorsHandler.NewHandler(doctorSvc, cfg.Booking.PerPage, log),
		GetAvailableDoctorsByDate: getAvailableDoctorsByDateHandler.NewHandler(doctorSvc, log),
		GetDoctorProfile:          getDoctorProfileHandler.NewHandler(doctorSvc, log),
		SetAvailability:           setAvailabilityHandler.NewHandler(setAvailabilityUseCase, log),
		RequestAppointment:        requestAppointmentHandler.NewHandler(requestAppointmentUseCase, log),
		GetPendingRequests:        getPendingRequestsHandler.NewHandler(appointmentSvc, cfg.Booking.PerPage, log),
		ManageRequest:             manageRequestHandler.NewHandler(manageRequestUseCase, log),
		GetMyAppointments:         getMyAppointmentsHandler.NewHandler(appointmentSvc, cfg.Booking.PerPage, log),
		CancelAppointment:         cancelAppointmentHandler.NewHandler(appointmentSvc, log),
	}

	r := api.NewRouter(handlers, api.Options{
		Auth:        middleware.NewAuthenticator(cfg.Auth.JWTSecret, cfg.Auth.Issuer, log),
		Metrics:     metricsCollector,
		MetricsPath: cfg.Metrics.Path,
		Logger:      log,
	})

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Ожидаем сигнал завершения или падение сервера
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case <-quit:
		log.Info("Shutting down server...")
	case err := <-serverErr:
		log.Error("Server failed: %v", err)
		runErr = fmt.Errorf("server failed: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Доставляем уже поставленные в очередь уведомления
	dispatcher.Close()
	if closer, ok := sender.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			log.Warn("Failed to close %s sender: %v", sender.Name(), err)
		}
	}

	close(stopMetricsCh)
	log.Info("Server stopped gracefully")

	return runErr
}

// newSender выбирает канал доставки уведомлений по конфигурации
func newSender(cfg *config.Config, users notifier.UserDirectory, log *logger.Logger) (notifier.Sender, error) {
	switch cfg.Notifications.Driver {
	case config.NotificationDriverRedis:
		s := notifier.NewRedisSender(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.Queue)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Ping(ctx); err != nil {
			s.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return s, nil
	case config.NotificationDriverSMTP:
		return notifier.NewSMTPSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From, users), nil
	case config.NotificationDriverWebhook:
		return notifier.NewWebhookSender(cfg.Webhook.URL, time.Duration(cfg.Webhook.Timeout)*time.Second), nil
	default:
		return notifier.NewLogSender(log), nil
	}
}
