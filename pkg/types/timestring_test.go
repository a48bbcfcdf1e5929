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
		{name: "valid", input: "09:30", wantErr: false},
		{name: "midnight", input: "00:00", wantErr: false},
		{name: "end of day", input: "23:59", wantErr: false},
		{name: "no leading zero", input: "9:30", wantErr: true},
		{name: "out of range hour", input: "24:00", wantErr: true},
		{name: "out of range minute", input: "10:60", wantErr: true},
		{name: "with seconds", input: "09:30:00", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "morning", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, ts.String())
		})
	}
}

func TestNewTimeString(t *testing.T) {
	moment := time.Date(2025, time.March, 10, 14, 45, 59, 0, time.UTC)
	assert.Equal(t, TimeString("14:45"), NewTimeString(moment))
}

func TestTimeString_Minutes(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{input: "00:00", want: 0},
		{input: "00:01", want: 1},
		{input: "09:30", want: 570},
		{input: "23:59", want: 1439},
	}

	for _, tt := range tests {
		got, err := TimeString(tt.input).Minutes()
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := TimeString("bad").Minutes()
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_AddMinutes(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		add     int
		want    string
		wantErr bool
	}{
		{name: "within hour", start: "09:00", add: 30, want: "09:30"},
		{name: "crosses hour", start: "09:45", add: 30, want: "10:15"},
		{name: "zero minutes", start: "09:00", add: 0, want: "09:00"},
		{name: "negative shift", start: "10:00", add: -15, want: "09:45"},
		{name: "last minute of day", start: "23:58", add: 1, want: "23:59"},
		{name: "exactly midnight", start: "23:00", add: 60, wantErr: true},
		{name: "past midnight", start: "23:30", add: 45, wantErr: true},
		{name: "before day start", start: "00:10", add: -20, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TimeString(tt.start).AddMinutes(tt.add)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, TimeString(tt.want), got)
		})
	}
}

func TestTimeString_Comparison(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.False(t, TimeString("11:00").IsBefore("10:00"))

	assert.True(t, TimeString("11:00").IsAfter("10:00"))
	assert.False(t, TimeString("10:00").IsAfter("10:00"))
	assert.False(t, TimeString("09:00").IsAfter("10:00"))
}

func TestTimeString_Scan(t *testing.T) {
	t.Run("postgres time with seconds", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan("09:30:00"))
		assert.Equal(t, TimeString("09:30"), ts)
	})

	t.Run("plain string", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan("14:45"))
		assert.Equal(t, TimeString("14:45"), ts)
	})

	t.Run("bytes", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan([]byte("08:15:30")))
		assert.Equal(t, TimeString("08:15"), ts)
	})

	t.Run("time.Time", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan(time.Date(2025, time.March, 10, 16, 20, 0, 0, time.UTC)))
		assert.Equal(t, TimeString("16:20"), ts)
	})

	t.Run("nil", func(t *testing.T) {
		ts := TimeString("09:00")
		require.NoError(t, ts.Scan(nil))
		assert.True(t, ts.IsZero())
	})

	t.Run("unsupported type", func(t *testing.T) {
		var ts TimeString
		assert.ErrorIs(t, ts.Scan(42), ErrInvalidTimeString)
	})
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("09:30").Value()
	require.NoError(t, err)
	assert.Equal(t, "09:30", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = TimeString("bad").Value()
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}
