package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-ClinicBooking/internal/infra/storage/appointment"
	availabilityRepo "github.com/m04kA/SMC-ClinicBooking/internal/infra/storage/availability"
	doctorRepo "github.com/m04kA/SMC-ClinicBooking/internal/infra/storage/doctor"
	userRepo "github.com/m04kA/SMC-ClinicBooking/internal/infra/storage/user"
)

// Service сервис отмены и просмотра записей
type Service struct {
	appointmentRepo  AppointmentRepository
	availabilityRepo AvailabilityRepository
	doctorRepo       DoctorRepository
	userRepo         UserRepository
	txManager        TransactionManager
	logger           Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	availabilityRepo AvailabilityRepository,
	doctorRepo DoctorRepository,
	userRepo UserRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo:  appointmentRepo,
		availabilityRepo: availabilityRepo,
		doctorRepo:       doctorRepo,
		userRepo:         userRepo,
		txManager:        txManager,
		logger:           logger,
	}
}

// Cancel отменяет запись по запросу пациента или врача этой записи
// request_status не меняется. Слот освобождается, только если запись его удерживала:
// после отклонения слот уже свободен и мог быть занят другим пациентом
func (s *Service) Cancel(ctx context.Context, appointmentID, callerID int64) (*domain.Appointment, error) {
	s.logger.Info("Cancel: appointment=%d, caller=%d", appointmentID, callerID)

	var result *domain.Appointment

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		appointment, err := s.appointmentRepo.GetByIDForParticipant(txCtx, appointmentID, callerID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				s.logger.Warn("Cancel: appointment id=%d not found for user=%d", appointmentID, callerID)
				return ErrAppointmentNotFound
			}
			s.logger.Error("Cancel: repository error for appointment id=%d: %v", appointmentID, err)
			return fmt.Errorf("%w: Cancel - get appointment: %v", ErrInternal, err)
		}

		if !appointment.CanBeCancelled() {
			s.logger.Warn("Cancel: appointment id=%d is already cancelled", appointmentID)
			return ErrAlreadyCancelled
		}

		heldSlot := appointment.HoldsSlot()
		appointment.Cancel()

		if err := s.appointmentRepo.UpdateStatus(txCtx, appointment); err != nil {
			s.logger.Error("Cancel: failed to update appointment id=%d: %v", appointmentID, err)
			return fmt.Errorf("%w: Cancel - update appointment: %v", ErrInternal, err)
		}

		if heldSlot {
			if err := s.availabilityRepo.MarkFree(txCtx, *appointment.AvailabilityID); err != nil {
				s.logger.Error("Cancel: failed to free availability id=%d: %v", *appointment.AvailabilityID, err)
				return fmt.Errorf("%w: Cancel - free availability: %v", ErrInternal, err)
			}
		}

		result = appointment
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrAppointmentNotFound),
			errors.Is(err, ErrAlreadyCancelled),
			errors.Is(err, ErrInternal):
			return nil, err
		default:
			s.logger.Error("Cancel: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: Cancel - transaction: %v", ErrInternal, err)
		}
	}

	s.logger.Info("Cancel: appointment id=%d cancelled by user=%d", appointmentID, callerID)
	return result, nil
}

// GetPendingRequests возвращает заявки врача, ожидающие решения
func (s *Service) GetPendingRequests(ctx context.Context, doctorID int64, role domain.Role, page domain.PageRequest) (*domain.Page[*domain.Appointment], error) {
	s.logger.Info("GetPendingRequests: doctor=%d, page=%d", doctorID, page.Page)

	if role != domain.RoleDoctor {
		s.logger.Warn("GetPendingRequests: user=%d with role=%s is not a doctor", doctorID, role)
		return nil, ErrUnauthorized
	}

	result, err := s.listPage(ctx, "GetPendingRequests", page, func(txCtx context.Context) ([]*domain.Appointment, int, error) {
		return s.appointmentRepo.ListPendingByDoctor(txCtx, doctorID, page)
	})
	if err != nil {
		return nil, err
	}

	if err := s.attachRelations(ctx, "GetPendingRequests", result.Items, relationPatient); err != nil {
		return nil, err
	}
	return result, nil
}

// GetPatientAppointments возвращает все записи пациента
func (s *Service) GetPatientAppointments(ctx context.Context, patientID int64, role domain.Role, page domain.PageRequest) (*domain.Page[*domain.Appointment], error) {
	s.logger.Info("GetPatientAppointments: patient=%d, page=%d", patientID, page.Page)

	if role != domain.RolePatient {
		s.logger.Warn("GetPatientAppointments: user=%d with role=%s is not a patient", patientID, role)
		return nil, ErrUnauthorized
	}

	result, err := s.listPage(ctx, "GetPatientAppointments", page, func(txCtx context.Context) ([]*domain.Appointment, int, error) {
		return s.appointmentRepo.ListByPatient(txCtx, patientID, page)
	})
	if err != nil {
		return nil, err
	}

	if err := s.attachRelations(ctx, "GetPatientAppointments", result.Items, relationDoctor); err != nil {
		return nil, err
	}
	return result, nil
}

// listPage читает count и страницу в одной read-only транзакции
func (s *Service) listPage(
	ctx context.Context,
	op string,
	page domain.PageRequest,
	fetch func(ctx context.Context) ([]*domain.Appointment, int, error),
) (*domain.Page[*domain.Appointment], error) {
	var (
		items []*domain.Appointment
		total int
	)

	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		items, total, err = fetch(txCtx)
		return err
	})
	if err != nil {
		s.logger.Error("%s: repository error: %v", op, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	s.logger.Info("%s: fetched %d of %d appointments", op, len(items), total)
	return &domain.Page[*domain.Appointment]{
		Items:   items,
		Total:   total,
		Page:    page.Page,
		PerPage: page.PerPage,
	}, nil
}

// Участник записи, подгружаемый в список вместе со слотом
type relation int

const (
	relationDoctor relation = iota
	relationPatient
)

// attachRelations подгружает врача или пациента и слот каждой записи страницы
// Выполняется вне транзакции: чтение слота в транзакции блокирует строку.
// Удаленный слот или пропавший участник оставляют поле пустым
func (s *Service) attachRelations(ctx context.Context, op string, items []*domain.Appointment, who relation) error {
	doctors := make(map[int64]*domain.Doctor)
	users := make(map[int64]*domain.User)
	slots := make(map[int64]*domain.AvailabilitySlot)

	for _, a := range items {
		switch who {
		case relationDoctor:
			doc, ok := doctors[a.DoctorID]
			if !ok {
				var err error
				doc, err = s.doctorRepo.GetByUserID(ctx, a.DoctorID)
				if err != nil && !errors.Is(err, doctorRepo.ErrDoctorNotFound) {
					s.logger.Error("%s: failed to load doctor=%d: %v", op, a.DoctorID, err)
					return fmt.Errorf("%w: %s - load doctor: %v", ErrInternal, op, err)
				}
				doctors[a.DoctorID] = doc
			}
			a.Doctor = doc
		case relationPatient:
			user, ok := users[a.PatientID]
			if !ok {
				var err error
				user, err = s.userRepo.GetByID(ctx, a.PatientID)
				if err != nil && !errors.Is(err, userRepo.ErrUserNotFound) {
					s.logger.Error("%s: failed to load patient=%d: %v", op, a.PatientID, err)
					return fmt.Errorf("%w: %s - load patient: %v", ErrInternal, op, err)
				}
				users[a.PatientID] = user
			}
			a.Patient = user
		}

		if a.AvailabilityID == nil {
			continue
		}
		slot, ok := slots[*a.AvailabilityID]
		if !ok {
			var err error
			slot, err = s.availabilityRepo.GetByID(ctx, *a.AvailabilityID)
			if err != nil && !errors.Is(err, availabilityRepo.ErrSlotNotFound) {
				s.logger.Error("%s: failed to load slot=%d: %v", op, *a.AvailabilityID, err)
				return fmt.Errorf("%w: %s - load slot: %v", ErrInternal, op, err)
			}
			slots[*a.AvailabilityID] = slot
		}
		a.Availability = slot
	}

	return nil
}
