package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAppointment_Lifecycle(t *testing.T) {
	tests := []struct {
		name    string
		request RequestStatus
		status  AppointmentStatus
		state   LifecycleState
		live    bool
	}{
		{"pending", RequestStatusPending, AppointmentStatusNone, StateRequested, true},
		{"accepted", RequestStatusAccepted, AppointmentStatusScheduled, StateScheduled, true},
		{"rejected", RequestStatusRejected, AppointmentStatusNone, StateRejected, false},
		{"pending cancelled", RequestStatusPending, AppointmentStatusCancelled, StateCancelled, false},
		{"accepted cancelled", RequestStatusAccepted, AppointmentStatusCancelled, StateCancelled, false},
		{"rejected cancelled", RequestStatusRejected, AppointmentStatusCancelled, StateCancelled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &Appointment{RequestStatus: tt.request, AppointmentStatus: tt.status}
			assert.Equal(t, tt.state, a.Lifecycle())
			assert.Equal(t, tt.live, a.IsLive())
		})
	}
}

func TestAppointment_Transitions(t *testing.T) {
	slotID := int64(7)
	a := &Appointment{RequestStatus: RequestStatusPending, AvailabilityID: &slotID, StartTime: "09:00", EndTime: "09:30"}
	assert.True(t, a.HoldsSlot())

	a.Accept("10:00", "10:45")
	assert.Equal(t, RequestStatusAccepted, a.RequestStatus)
	assert.Equal(t, AppointmentStatusScheduled, a.AppointmentStatus)
	assert.Equal(t, "10:00", a.StartTime.String())
	assert.True(t, a.HoldsSlot())

	a.Cancel()
	assert.Equal(t, RequestStatusAccepted, a.RequestStatus)
	assert.False(t, a.HoldsSlot())
	assert.False(t, a.CanBeCancelled())
}

func TestAvailabilitySlot_IsBookable(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	deleted := now

	tests := []struct {
		name string
		slot AvailabilitySlot
		want bool
	}{
		{"today free", AvailabilitySlot{Date: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)}, true},
		{"future free", AvailabilitySlot{Date: time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)}, true},
		{"yesterday", AvailabilitySlot{Date: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)}, false},
		{"booked", AvailabilitySlot{Date: time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), IsBooked: true}, false},
		{"deleted", AvailabilitySlot{Date: time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), DeletedAt: &deleted}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.slot.IsBookable(now))
		})
	}
}

func TestTimeRange_IsValid(t *testing.T) {
	assert.True(t, TimeRange{Start: "09:00", End: "09:30"}.IsValid())
	assert.False(t, TimeRange{Start: "09:30", End: "09:30"}.IsValid())
	assert.False(t, TimeRange{Start: "10:00", End: "09:00"}.IsValid())
	assert.False(t, TimeRange{Start: "9:00", End: "10:00"}.IsValid())
}

func TestPage_LastPage(t *testing.T) {
	assert.Equal(t, 1, Page[int]{Total: 0, PerPage: 10}.LastPage())
	assert.Equal(t, 1, Page[int]{Total: 10, PerPage: 10}.LastPage())
	assert.Equal(t, 3, Page[int]{Total: 21, PerPage: 10}.LastPage())

	req := NewPageRequest(0, 500)
	assert.Equal(t, 1, req.Page)
	assert.Equal(t, MaxPerPage, req.PerPage)
	assert.Equal(t, 0, req.Offset())
	assert.Equal(t, 20, NewPageRequest(3, 0).Offset())
}

func TestValidationError(t *testing.T) {
	sentinel := assert.AnError
	err := NewValidationError(sentinel, "doctor_id", "The selected doctor id is invalid.")
	err.Fields.Add("notes", "too long")

	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, []string{"The selected doctor id is invalid."}, err.Fields["doctor_id"])
	assert.Contains(t, err.Error(), "doctor_id: The selected doctor id is invalid.; notes: too long")
}
