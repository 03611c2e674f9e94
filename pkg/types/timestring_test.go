package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid morning", input: "09:00"},
		{name: "valid evening", input: "23:59"},
		{name: "missing leading zero", input: "9:00", wantErr: true},
		{name: "with seconds", input: "09:00:00", wantErr: true},
		{name: "hour out of range", input: "24:00", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "ab:cd", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, ts.String())
		})
	}
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("09:30"))
	assert.False(t, TimeString("09:30").IsBefore("09:30"))
	assert.True(t, TimeString("10:00").IsAfter("09:59"))
	assert.False(t, TimeString("bad").IsBefore("09:00"))
	assert.False(t, TimeString("09:00").IsAfter("bad"))
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := TimeString("09:45").AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:15"), got)

	_, err = TimeString("23:50").AddMinutes(15)
	assert.ErrorIs(t, err, ErrTimeOverflow)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("14:30:00"))
	assert.Equal(t, TimeString("14:30"), ts)

	require.NoError(t, ts.Scan([]byte("08:05")))
	assert.Equal(t, TimeString("08:05"), ts)

	require.NoError(t, ts.Scan(time.Date(2026, 1, 1, 7, 15, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("07:15"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}
