package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type slot struct {
	StartTime string `json:"start_time" validate:"required,hhmm"`
	EndTime   string `json:"end_time" validate:"required,hhmm"`
}

type availability struct {
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	TimeSlots []slot `json:"time_slots" validate:"required,min=1,dive"`
}

type manage struct {
	Action    string  `json:"action" validate:"required,oneof=accept reject"`
	StartTime *string `json:"start_time" validate:"required_if=Action accept,omitempty,hhmm"`
}

func strPtr(s string) *string { return &s }

func TestStruct_Valid(t *testing.T) {
	assert.Nil(t, Struct(&availability{
		Date:      "2025-10-15",
		TimeSlots: []slot{{StartTime: "09:00", EndTime: "09:30"}},
	}))
	assert.Nil(t, Struct(&manage{Action: "reject"}))
	assert.Nil(t, Struct(&manage{Action: "accept", StartTime: strPtr("10:00")}))
}

func TestStruct_NestedKeys(t *testing.T) {
	fields := Struct(&availability{
		Date: "15.10.2025",
		TimeSlots: []slot{
			{StartTime: "09:00", EndTime: "09:30"},
			{StartTime: "9am", EndTime: ""},
		},
	})
	require.NotNil(t, fields)

	assert.Equal(t, []string{"The date does not match the format Y-m-d."}, fields["date"])
	assert.Equal(t, []string{"The start time does not match the format H:i."}, fields["time_slots.1.start_time"])
	assert.Equal(t, []string{"The end time field is required."}, fields["time_slots.1.end_time"])
	assert.NotContains(t, fields, "time_slots.0.start_time")
}

func TestStruct_EmptySlots(t *testing.T) {
	fields := Struct(&availability{Date: "2025-10-15", TimeSlots: []slot{}})
	require.NotNil(t, fields)
	assert.Equal(t, []string{"The time slots must have at least 1 items."}, fields["time_slots"])
}

func TestStruct_RequiredIf(t *testing.T) {
	fields := Struct(&manage{Action: "accept"})
	require.NotNil(t, fields)
	assert.Equal(t, []string{"The start time field is required when action is accept."}, fields["start_time"])

	fields = Struct(&manage{Action: "postpone"})
	require.NotNil(t, fields)
	assert.Equal(t, []string{"The selected action is invalid."}, fields["action"])
}

func TestFieldKey(t *testing.T) {
	assert.Equal(t, "time_slots.0.start_time", fieldKey("Req.time_slots[0].start_time"))
	assert.Equal(t, "doctor_id", fieldKey("Req.doctor_id"))
}
