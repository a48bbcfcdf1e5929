package domain

import (
	"time"

	"github.com/clockly/booking-service/pkg/types"
)

// AvailabilityWindow провайдерское окно доступности на дату
// Несколько окон на одну дату допустимы, в том числе пересекающиеся:
// пересечение трактуется аддитивно (объединение доступного времени)
type AvailabilityWindow struct {
	ID         int64
	ProviderID int64
	Date       time.Time
	StartTime  types.TimeString
	EndTime    types.TimeString
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Range returns the window's time range
func (w *AvailabilityWindow) Range() TimeRange {
	return TimeRange{Start: w.StartTime, End: w.EndTime}
}

// Covers returns true if the window is active and fully contains the given range
func (w *AvailabilityWindow) Covers(r TimeRange) bool {
	return w.IsActive && w.Range().Contains(r)
}

// BlackoutWindow провайдерское окно недоступности (перерыв) на дату
// Та же форма, что и AvailabilityWindow, но вычитает из доступного времени
type BlackoutWindow struct {
	ID         int64
	ProviderID int64
	Date       time.Time
	StartTime  types.TimeString
	EndTime    types.TimeString
	Reason     *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Range returns the blackout's time range
func (b *BlackoutWindow) Range() TimeRange {
	return TimeRange{Start: b.StartTime, End: b.EndTime}
}
