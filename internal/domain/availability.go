package domain

import (
	"time"

	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

// AvailabilitySlot окно приема, объявленное врачом на конкретную дату
// IsBooked == true тогда и только тогда, когда слот удерживает живая запись
type AvailabilitySlot struct {
	ID        int64
	DoctorID  int64
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	IsBooked  bool
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// IsDeleted возвращает true для мягко удаленного слота
func (s *AvailabilitySlot) IsDeleted() bool {
	return s.DeletedAt != nil
}

// IsInPast возвращает true, если дата слота раньше сегодняшней
func (s *AvailabilitySlot) IsInPast(now time.Time) bool {
	return IsDateBefore(s.Date, now)
}

// IsBookable слот свободен, не удален и не в прошлом
func (s *AvailabilitySlot) IsBookable(now time.Time) bool {
	return !s.IsBooked && !s.IsDeleted() && !s.IsInPast(now)
}

// TimeRange интервал времени внутри дня
type TimeRange struct {
	Start types.TimeString
	End   types.TimeString
}

// IsValid оба конца корректны и конец строго позже начала
func (r TimeRange) IsValid() bool {
	if r.Start.Validate() != nil || r.End.Validate() != nil {
		return false
	}
	return r.End.IsAfter(r.Start)
}

// DateOnly обнуляет время, оставляя календарную дату в исходной локации
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// IsDateBefore сравнивает только календарные даты
func IsDateBefore(date, reference time.Time) bool {
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	r := time.Date(reference.Year(), reference.Month(), reference.Day(), 0, 0, 0, 0, time.UTC)
	return d.Before(r)
}
