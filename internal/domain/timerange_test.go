package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clockly/booking-service/pkg/types"
)

func mustRange(t *testing.T, start, end string) TimeRange {
	t.Helper()
	r, err := NewTimeRange(types.TimeString(start), types.TimeString(end))
	require.NoError(t, err)
	return r
}

func TestNewTimeRange(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		wantErr bool
	}{
		{name: "valid range", start: "09:00", end: "12:00", wantErr: false},
		{name: "one minute range", start: "09:00", end: "09:01", wantErr: false},
		{name: "start equals end", start: "09:00", end: "09:00", wantErr: true},
		{name: "start after end", start: "12:00", end: "09:00", wantErr: true},
		{name: "invalid start format", start: "9am", end: "12:00", wantErr: true},
		{name: "invalid end format", start: "09:00", end: "25:00", wantErr: true},
		{name: "empty start", start: "", end: "12:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewTimeRange(types.TimeString(tt.start), types.TimeString(tt.end))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, types.TimeString(tt.start), r.Start)
			assert.Equal(t, types.TimeString(tt.end), r.End)
		})
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a    [2]string
		b    [2]string
		want bool
	}{
		{name: "identical ranges", a: [2]string{"10:00", "11:00"}, b: [2]string{"10:00", "11:00"}, want: true},
		{name: "partial overlap right", a: [2]string{"10:00", "11:00"}, b: [2]string{"10:30", "11:30"}, want: true},
		{name: "partial overlap left", a: [2]string{"10:30", "11:30"}, b: [2]string{"10:00", "11:00"}, want: true},
		{name: "b inside a", a: [2]string{"09:00", "12:00"}, b: [2]string{"10:00", "11:00"}, want: true},
		{name: "a inside b", a: [2]string{"10:00", "11:00"}, b: [2]string{"09:00", "12:00"}, want: true},
		{name: "one minute of overlap", a: [2]string{"10:00", "11:00"}, b: [2]string{"10:59", "12:00"}, want: true},
		{name: "a ends when b starts", a: [2]string{"09:00", "10:00"}, b: [2]string{"10:00", "11:00"}, want: false},
		{name: "b ends when a starts", a: [2]string{"10:00", "11:00"}, b: [2]string{"09:00", "10:00"}, want: false},
		{name: "disjoint", a: [2]string{"09:00", "10:00"}, b: [2]string{"11:00", "12:00"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := mustRange(t, tt.a[0], tt.a[1])
			b := mustRange(t, tt.b[0], tt.b[1])

			assert.Equal(t, tt.want, Overlaps(a, b))
			// Пересечение симметрично
			assert.Equal(t, tt.want, Overlaps(b, a))
		})
	}
}

func TestTimeRange_Contains(t *testing.T) {
	outer := mustRange(t, "09:00", "12:00")

	tests := []struct {
		name  string
		inner [2]string
		want  bool
	}{
		{name: "strictly inside", inner: [2]string{"10:00", "11:00"}, want: true},
		{name: "same range", inner: [2]string{"09:00", "12:00"}, want: true},
		{name: "shares start boundary", inner: [2]string{"09:00", "10:00"}, want: true},
		{name: "shares end boundary", inner: [2]string{"11:00", "12:00"}, want: true},
		{name: "starts before outer", inner: [2]string{"08:30", "10:00"}, want: false},
		{name: "ends after outer", inner: [2]string{"11:00", "12:30"}, want: false},
		{name: "fully outside", inner: [2]string{"13:00", "14:00"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inner := mustRange(t, tt.inner[0], tt.inner[1])
			assert.Equal(t, tt.want, outer.Contains(inner))
		})
	}
}

func TestComputeEnd(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		duration int
		want     string
		wantErr  bool
	}{
		{name: "one hour", start: "10:00", duration: 60, want: "11:00"},
		{name: "45 minutes", start: "10:15", duration: 45, want: "11:00"},
		{name: "crosses hour", start: "10:45", duration: 30, want: "11:15"},
		{name: "end of day", start: "23:00", duration: 59, want: "23:59"},
		{name: "exactly midnight rejected", start: "23:00", duration: 60, wantErr: true},
		{name: "crosses midnight rejected", start: "23:30", duration: 60, wantErr: true},
		{name: "zero duration rejected", start: "10:00", duration: 0, wantErr: true},
		{name: "negative duration rejected", start: "10:00", duration: -30, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			end, err := ComputeEnd(types.TimeString(tt.start), tt.duration)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, types.TimeString(tt.want), end)
		})
	}
}

func TestBooking_IsActive(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusPending}).IsActive())
	assert.True(t, (&Booking{Status: StatusConfirmed}).IsActive())
	assert.False(t, (&Booking{Status: StatusCancelled}).IsActive())
}

func TestBooking_Transitions(t *testing.T) {
	pending := &Booking{Status: StatusPending}
	confirmed := &Booking{Status: StatusConfirmed}
	cancelled := &Booking{Status: StatusCancelled}

	assert.True(t, pending.CanBeCancelled())
	assert.True(t, confirmed.CanBeCancelled())
	assert.False(t, cancelled.CanBeCancelled())

	assert.True(t, pending.CanBeRescheduled())
	assert.True(t, confirmed.CanBeRescheduled())
	assert.False(t, cancelled.CanBeRescheduled())
}

func TestAvailabilityWindow_Covers(t *testing.T) {
	window := &AvailabilityWindow{
		StartTime: "09:00",
		EndTime:   "12:00",
		IsActive:  true,
	}

	assert.True(t, window.Covers(mustRange(t, "09:00", "10:00")))
	assert.True(t, window.Covers(mustRange(t, "11:00", "12:00")))
	assert.False(t, window.Covers(mustRange(t, "11:30", "12:30")))

	window.IsActive = false
	assert.False(t, window.Covers(mustRange(t, "09:00", "10:00")))
}

func TestVerificationToken_IsExpired(t *testing.T) {
	created := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	token := &VerificationToken{CreatedAt: created}

	assert.False(t, token.IsExpired(created))
	assert.False(t, token.IsExpired(created.Add(VerificationTokenTTL)))
	assert.True(t, token.IsExpired(created.Add(VerificationTokenTTL+time.Minute)))
}
