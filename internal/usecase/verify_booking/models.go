package verify_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/clockly/booking-service/internal/domain"
	"github.com/clockly/booking-service/pkg/types"
)

// Request модель запроса на подтверждение бронирования
type Request struct {
	Token uuid.UUID
}

// Response модель ответа на подтверждение бронирования
type Response struct {
	BookingID int64
	Status    domain.BookingStatus
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString

	// AlreadyVerified true при повторном переходе по ссылке:
	// статус не меняется и письмо повторно не отправляется
	AlreadyVerified bool
}
