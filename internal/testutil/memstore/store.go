// Package memstore in-memory реализация репозиториев и менеджера транзакций для тестов usecase и сервисов.
// Ошибки совпадают с ошибками пакетов internal/infra/storage.
package memstore

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

// Store общее состояние всех репозиториев
type Store struct {
	mu sync.Mutex

	users        map[int64]domain.User
	doctors      map[int64]domain.Doctor
	slots        map[int64]domain.AvailabilitySlot
	appointments map[int64]domain.Appointment

	nextSlotID        int64
	nextAppointmentID int64
	clock             time.Time
}

// New создает пустое хранилище
func New() *Store {
	return &Store{
		users:        make(map[int64]domain.User),
		doctors:      make(map[int64]domain.Doctor),
		slots:        make(map[int64]domain.AvailabilitySlot),
		appointments: make(map[int64]domain.Appointment),
		clock:        time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// Repositories

func (s *Store) Availabilities() *Availabilities { return &Availabilities{s: s} }
func (s *Store) Appointments() *Appointments     { return &Appointments{s: s} }
func (s *Store) Doctors() *Doctors               { return &Doctors{s: s} }
func (s *Store) Users() *Users                   { return &Users{s: s} }
func (s *Store) TxManager() *TxManager           { return &TxManager{s: s} }

// Наполнение

// AddUser добавляет пользователя
func (s *Store) AddUser(id int64, email string, role domain.Role) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[id] = domain.User{ID: id, Email: email, Role: role, CreatedAt: s.tick()}
}

// AddDoctor добавляет пользователя с ролью doctor и профиль врача
func (s *Store) AddDoctor(d domain.Doctor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[d.UserID]; !ok {
		s.users[d.UserID] = domain.User{ID: d.UserID, Email: fmt.Sprintf("doctor%d@clinic.test", d.UserID), Role: domain.RoleDoctor}
	}
	d.Availabilities = nil
	d.CreatedAt = s.tick()
	s.doctors[d.UserID] = d
}

// AddSlot добавляет слот и возвращает его ID
func (s *Store) AddSlot(doctorID int64, date time.Time, start, end types.TimeString, booked bool) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSlotID++
	now := s.tick()
	s.slots[s.nextSlotID] = domain.AvailabilitySlot{
		ID:        s.nextSlotID,
		DoctorID:  doctorID,
		Date:      domain.DateOnly(date),
		StartTime: start,
		EndTime:   end,
		IsBooked:  booked,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return s.nextSlotID
}

// AddAppointment добавляет запись как есть и возвращает ее ID
func (s *Store) AddAppointment(a domain.Appointment) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextAppointmentID++
	a.ID = s.nextAppointmentID
	a.CreatedAt = s.tick()
	a.UpdatedAt = a.CreatedAt
	s.appointments[a.ID] = a
	return a.ID
}

// Чтение состояния

// Slot возвращает копию слота (включая удаленные)
func (s *Store) Slot(id int64) (domain.AvailabilitySlot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	slot, ok := s.slots[id]
	return slot, ok
}

// Appointment возвращает копию записи
func (s *Store) Appointment(id int64) (domain.Appointment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.appointments[id]
	return a, ok
}

// AppointmentsCount количество записей
func (s *Store) AppointmentsCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.appointments)
}

// LiveSlots возвращает не удаленные слоты врача на дату
func (s *Store) LiveSlots(doctorID int64, date time.Time) []domain.AvailabilitySlot {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.AvailabilitySlot
	for _, slot := range s.slots {
		if slot.DoctorID == doctorID && sameDate(slot.Date, date) && slot.DeletedAt == nil {
			out = append(out, slot)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.IsBefore(out[j].StartTime) })
	return out
}

// CheckSlotInvariant проверяет: слот занят тогда и только тогда, когда его удерживает живая запись,
// и ни один слот не удерживают две живые записи
func (s *Store) CheckSlotInvariant() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	holders := make(map[int64]int)
	for _, a := range s.appointments {
		if a.DeletedAt == nil && a.HoldsSlot() {
			holders[*a.AvailabilityID]++
		}
	}

	for id, slot := range s.slots {
		if slot.DeletedAt != nil {
			continue
		}
		if holders[id] > 1 {
			return fmt.Errorf("slot %d is held by %d live appointments", id, holders[id])
		}
		if slot.IsBooked != (holders[id] == 1) {
			return fmt.Errorf("slot %d: is_booked=%t but live holders=%d", id, slot.IsBooked, holders[id])
		}
	}
	return nil
}

// tick монотонное время для created_at/updated_at, вызывается под s.mu
func (s *Store) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
