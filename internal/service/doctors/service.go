package doctors

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	doctorRepo "github.com/m04kA/SMC-ClinicBooking/internal/infra/storage/doctor"
	"github.com/m04kA/SMC-ClinicBooking/pkg/ptr"
)

// Service сервис поиска врачей и их свободных слотов
type Service struct {
	doctorRepo       DoctorRepository
	availabilityRepo AvailabilityRepository
	timeProvider     TimeProvider
	logger           Logger
}

// NewService создает новый экземпляр сервиса врачей
func NewService(
	doctorRepo DoctorRepository,
	availabilityRepo AvailabilityRepository,
	logger Logger,
) *Service {
	return &Service{
		doctorRepo:       doctorRepo,
		availabilityRepo: availabilityRepo,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// WithTimeProvider подменяет источник времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// ListAvailable возвращает страницу врачей по фильтру со свободными слотами начиная с сегодня
// Врачи без свободных слотов тоже попадают в выдачу с пустым списком
func (s *Service) ListAvailable(ctx context.Context, specialization, city *string, page domain.PageRequest) (*domain.Page[*domain.Doctor], error) {
	s.logger.Info("ListAvailable: specialization=%v, city=%v, page=%d", ptr.Value(specialization), ptr.Value(city), page.Page)

	today := domain.DateOnly(s.timeProvider.Now())
	filter := domain.AvailableDoctorsFilter{
		Specialization: specialization,
		City:           city,
		FromDate:       today,
	}

	doctors, total, err := s.doctorRepo.ListAvailable(ctx, filter, page)
	if err != nil {
		s.logger.Error("ListAvailable: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListAvailable - repository error: %v", ErrInternal, err)
	}

	if err := s.attachSlots(ctx, doctors, today, nil); err != nil {
		s.logger.Error("ListAvailable: failed to load slots: %v", err)
		return nil, fmt.Errorf("%w: ListAvailable - load slots: %v", ErrInternal, err)
	}

	s.logger.Info("ListAvailable: fetched %d of %d doctors", len(doctors), total)
	return &domain.Page[*domain.Doctor]{
		Items:   doctors,
		Total:   total,
		Page:    page.Page,
		PerPage: page.PerPage,
	}, nil
}

// ListAvailableOnDate возвращает врачей, у которых есть свободный слот на дату
func (s *Service) ListAvailableOnDate(ctx context.Context, date time.Time, specialization, city *string) ([]*domain.Doctor, error) {
	s.logger.Info("ListAvailableOnDate: date=%s", date.Format(domain.DateFormat))

	now := s.timeProvider.Now()
	if date.IsZero() {
		return nil, domain.NewValidationError(ErrInvalidInput, "date", "The date field is required.")
	}
	if domain.IsDateBefore(date, now) {
		s.logger.Warn("ListAvailableOnDate: date %s is in the past", date.Format(domain.DateFormat))
		return nil, domain.NewValidationError(ErrInvalidInput, "date", "The date must be a date after or equal to today.")
	}

	onDate := domain.DateOnly(date)
	filter := domain.AvailableDoctorsFilter{
		Specialization: specialization,
		City:           city,
		FromDate:       onDate,
		OnDate:         &onDate,
	}

	doctors, err := s.doctorRepo.ListAvailableOnDate(ctx, filter)
	if err != nil {
		s.logger.Error("ListAvailableOnDate: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListAvailableOnDate - repository error: %v", ErrInternal, err)
	}

	if err := s.attachSlots(ctx, doctors, onDate, &onDate); err != nil {
		s.logger.Error("ListAvailableOnDate: failed to load slots: %v", err)
		return nil, fmt.Errorf("%w: ListAvailableOnDate - load slots: %v", ErrInternal, err)
	}

	s.logger.Info("ListAvailableOnDate: fetched %d doctors", len(doctors))
	return doctors, nil
}

// GetProfile возвращает профиль врача со свободными слотами начиная с сегодня
func (s *Service) GetProfile(ctx context.Context, userID int64) (*domain.Doctor, error) {
	s.logger.Info("GetProfile: user=%d", userID)

	doc, err := s.doctorRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, doctorRepo.ErrDoctorNotFound) {
			s.logger.Warn("GetProfile: doctor profile for user=%d not found", userID)
			return nil, ErrDoctorNotFound
		}
		s.logger.Error("GetProfile: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetProfile - repository error: %v", ErrInternal, err)
	}

	today := domain.DateOnly(s.timeProvider.Now())
	if err := s.attachSlots(ctx, []*domain.Doctor{doc}, today, nil); err != nil {
		s.logger.Error("GetProfile: failed to load slots: %v", err)
		return nil, fmt.Errorf("%w: GetProfile - load slots: %v", ErrInternal, err)
	}

	return doc, nil
}

// attachSlots подгружает свободные слоты одним запросом и раскладывает по врачам
func (s *Service) attachSlots(ctx context.Context, doctors []*domain.Doctor, fromDate time.Time, onDate *time.Time) error {
	if len(doctors) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(doctors))
	byID := make(map[int64]*domain.Doctor, len(doctors))
	for _, d := range doctors {
		ids = append(ids, d.UserID)
		byID[d.UserID] = d
		if d.Availabilities == nil {
			d.Availabilities = make([]*domain.AvailabilitySlot, 0)
		}
	}

	slots, err := s.availabilityRepo.ListFreeByDoctors(ctx, ids, fromDate, onDate)
	if err != nil {
		return err
	}

	for _, slot := range slots {
		if d, ok := byID[slot.DoctorID]; ok {
			d.Availabilities = append(d.Availabilities, slot)
		}
	}
	return nil
}
