package reschedule_booking

import (
	"time"

	"github.com/clockly/booking-service/internal/domain"
	"github.com/clockly/booking-service/pkg/types"
)

// Request модель запроса на перенос бронирования
// ProviderID берётся из аутентификации, не из тела запроса
type Request struct {
	BookingID  int64
	ProviderID int64
	Date       time.Time
	StartTime  types.TimeString
}

// Response модель ответа на перенос бронирования
type Response struct {
	BookingID int64
	Status    domain.BookingStatus
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
}
