package domain

import (
	"time"

	"github.com/clockly/booking-service/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking represents a customer appointment in the system
type Booking struct {
	ID         int64
	ProviderID int64
	ServiceID  int64
	WindowID   int64 // ID окна доступности, из которого вырезано бронирование
	Date       time.Time
	StartTime  types.TimeString
	EndTime    types.TimeString // всегда вычисляется как StartTime + service.Duration

	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Note          *string

	Status BookingStatus

	// Denormalized data for history
	ServiceName  string
	ServicePrice float64

	// Notification flags
	EmailSent   bool
	WasReminded bool

	// EndDatetime абсолютный момент окончания (дата + EndTime),
	// хранится для retention-джобы
	EndDatetime time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Range returns the booking's time range
func (b *Booking) Range() TimeRange {
	return TimeRange{Start: b.StartTime, End: b.EndTime}
}

// IsActive returns true if the booking occupies schedule time
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeRescheduled returns true if the booking can be moved to another slot
func (b *Booking) CanBeRescheduled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// ProviderBookingsFilter фильтр для получения бронирований провайдера
type ProviderBookingsFilter struct {
	ProviderID       int64          // Обязательный параметр
	Date             *time.Time     // Фильтр по дате (опционально)
	Status           *BookingStatus // Фильтр по статусу (опционально)
	IncludeCancelled bool           // Включать ли отменённые бронирования
}
