package set_availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/internal/testutil/memstore"
	"github.com/m04kA/SMC-ClinicBooking/pkg/logger"
	"github.com/m04kA/SMC-ClinicBooking/pkg/ptr"
	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

const (
	doctorID  int64 = 10
	patientID int64 = 20
)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

var (
	now      = time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)
	tomorrow = time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)
)

func newUseCase(store *memstore.Store, availability *memstore.Availabilities) *UseCase {
	return NewUseCase(availability, store.Appointments(), store.Doctors(), store.TxManager(), logger.Nop()).
		WithTimeProvider(fixedTime{now})
}

func newStore() *memstore.Store {
	store := memstore.New()
	store.AddDoctor(domain.Doctor{UserID: doctorID, FirstName: "Anna", LastName: "Petrova"})
	store.AddUser(patientID, "patient@clinic.test", domain.RolePatient)
	return store
}

func slots(pairs ...string) []domain.TimeRange {
	out := make([]domain.TimeRange, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, domain.TimeRange{Start: types.TimeString(pairs[i]), End: types.TimeString(pairs[i+1])})
	}
	return out
}

// consecutive n соседних слотов по 10 минут с полуночи
func consecutive(n int) []domain.TimeRange {
	out := make([]domain.TimeRange, 0, n)
	start := types.TimeString("00:00")
	for i := 0; i < n; i++ {
		end, _ := start.AddMinutes(10)
		out = append(out, domain.TimeRange{Start: start, End: end})
		start = end
	}
	return out
}

func TestExecute_ReplacesSlots(t *testing.T) {
	store := newStore()
	oldID := store.AddSlot(doctorID, tomorrow, "08:00", "08:30", false)
	uc := newUseCase(store, store.Availabilities())

	resp, err := uc.Execute(context.Background(), &Request{
		DoctorID:  doctorID,
		Role:      domain.RoleDoctor,
		Date:      tomorrow,
		TimeSlots: slots("09:00", "09:30", "10:00", "10:30"),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.Removed)
	require.Len(t, resp.Slots, 2)
	for _, slot := range resp.Slots {
		assert.NotZero(t, slot.ID)
		assert.False(t, slot.IsBooked)
	}

	old, _ := store.Slot(oldID)
	assert.NotNil(t, old.DeletedAt, "previous slot is soft-deleted")

	live := store.LiveSlots(doctorID, tomorrow)
	require.Len(t, live, 2)
	assert.Equal(t, "09:00", live[0].StartTime.String())
	assert.Equal(t, "10:00", live[1].StartTime.String())
}

func TestExecute_BlockedByLiveAppointment(t *testing.T) {
	store := newStore()
	heldID := store.AddSlot(doctorID, tomorrow, "08:00", "08:30", true)
	store.AddSlot(doctorID, tomorrow, "09:00", "09:30", false)
	store.AddAppointment(domain.Appointment{
		DoctorID:        doctorID,
		PatientID:       patientID,
		AvailabilityID:  ptr.Ptr(heldID),
		AppointmentDate: tomorrow,
		StartTime:       "08:00",
		EndTime:         "08:30",
		RequestStatus:   domain.RequestStatusAccepted,
	})
	uc := newUseCase(store, store.Availabilities())

	_, err := uc.Execute(context.Background(), &Request{
		DoctorID:  doctorID,
		Role:      domain.RoleDoctor,
		Date:      tomorrow,
		TimeSlots: slots("12:00", "12:30"),
	})
	assert.ErrorIs(t, err, ErrAvailabilityInUse)

	assert.Len(t, store.LiveSlots(doctorID, tomorrow), 2, "nothing changes")
	assert.NoError(t, store.CheckSlotInvariant())
}

func TestExecute_CancelledAppointmentDoesNotBlock(t *testing.T) {
	store := newStore()
	slotID := store.AddSlot(doctorID, tomorrow, "08:00", "08:30", false)
	store.AddAppointment(domain.Appointment{
		DoctorID:          doctorID,
		PatientID:         patientID,
		AvailabilityID:    ptr.Ptr(slotID),
		AppointmentDate:   tomorrow,
		StartTime:         "08:00",
		EndTime:           "08:30",
		RequestStatus:     domain.RequestStatusAccepted,
		AppointmentStatus: domain.AppointmentStatusCancelled,
	})
	uc := newUseCase(store, store.Availabilities())

	_, err := uc.Execute(context.Background(), &Request{
		DoctorID:  doctorID,
		Role:      domain.RoleDoctor,
		Date:      tomorrow,
		TimeSlots: slots("12:00", "12:30"),
	})
	assert.NoError(t, err)
}

func TestExecute_RollbackOnInsertFailure(t *testing.T) {
	store := newStore()
	store.AddSlot(doctorID, tomorrow, "08:00", "08:30", false)
	availability := store.Availabilities()
	availability.FailCreateBatch = errors.New("disk full")
	uc := newUseCase(store, availability)

	_, err := uc.Execute(context.Background(), &Request{
		DoctorID:  doctorID,
		Role:      domain.RoleDoctor,
		Date:      tomorrow,
		TimeSlots: slots("12:00", "12:30"),
	})
	assert.ErrorIs(t, err, ErrInternal)

	live := store.LiveSlots(doctorID, tomorrow)
	require.Len(t, live, 1, "soft delete is rolled back")
	assert.Equal(t, "08:00", live[0].StartTime.String())
}

func TestExecute_Rejections(t *testing.T) {
	tests := []struct {
		name      string
		req       Request
		wantErr   error
		wantField string
	}{
		{
			name:    "patient",
			req:     Request{DoctorID: patientID, Role: domain.RolePatient, Date: tomorrow, TimeSlots: slots("09:00", "09:30")},
			wantErr: ErrUnauthorized,
		},
		{
			name:    "no doctor profile",
			req:     Request{DoctorID: 77, Role: domain.RoleDoctor, Date: tomorrow, TimeSlots: slots("09:00", "09:30")},
			wantErr: ErrDoctorNotFound,
		},
		{
			name:      "past date",
			req:       Request{DoctorID: doctorID, Role: domain.RoleDoctor, Date: now.AddDate(0, 0, -1), TimeSlots: slots("09:00", "09:30")},
			wantErr:   ErrInvalidInput,
			wantField: "date",
		},
		{
			name:      "empty slots",
			req:       Request{DoctorID: doctorID, Role: domain.RoleDoctor, Date: tomorrow},
			wantErr:   ErrInvalidInput,
			wantField: "time_slots",
		},
		{
			name:      "end before start",
			req:       Request{DoctorID: doctorID, Role: domain.RoleDoctor, Date: tomorrow, TimeSlots: slots("09:00", "09:30", "11:00", "10:00")},
			wantErr:   ErrInvalidInput,
			wantField: "time_slots.1.end_time",
		},
		{
			name:      "bad format",
			req:       Request{DoctorID: doctorID, Role: domain.RoleDoctor, Date: tomorrow, TimeSlots: slots("9:00", "09:30")},
			wantErr:   ErrInvalidInput,
			wantField: "time_slots.0.start_time",
		},
		{
			name:      "overlap",
			req:       Request{DoctorID: doctorID, Role: domain.RoleDoctor, Date: tomorrow, TimeSlots: slots("10:00", "11:00", "09:00", "10:30")},
			wantErr:   ErrInvalidInput,
			wantField: "time_slots.0",
		},
		{
			name:      "too many slots",
			req:       Request{DoctorID: doctorID, Role: domain.RoleDoctor, Date: tomorrow, TimeSlots: consecutive(domain.MaxSlotsPerDay + 1)},
			wantErr:   ErrInvalidInput,
			wantField: "time_slots",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newStore()
			uc := newUseCase(store, store.Availabilities())

			_, err := uc.Execute(context.Background(), &tt.req)
			assert.ErrorIs(t, err, tt.wantErr)

			if tt.wantField != "" {
				var vErr *domain.ValidationError
				require.ErrorAs(t, err, &vErr)
				assert.Contains(t, vErr.Fields, tt.wantField)
			}
		})
	}
}

func TestExecute_TodayIsAllowed(t *testing.T) {
	store := newStore()
	uc := newUseCase(store, store.Availabilities())

	_, err := uc.Execute(context.Background(), &Request{
		DoctorID:  doctorID,
		Role:      domain.RoleDoctor,
		Date:      now,
		TimeSlots: slots("18:00", "18:30"),
	})
	assert.NoError(t, err)
}
