package create_booking

import (
	"time"

	"github.com/clockly/booking-service/internal/domain"
	"github.com/clockly/booking-service/pkg/types"
)

// Request модель запроса на создание бронирования
//
// AuthProviderID заполняется из аутентификации. Если он совпадает с
// провайдером, которому принадлежит slug, бронирование создаётся сразу
// со статусом confirmed, без токена подтверждения. Публичный поток
// всегда создаёт pending
type Request struct {
	ProviderSlug string
	ServiceID    int64
	Date         time.Time
	StartTime    types.TimeString

	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Note          *string

	AuthProviderID *int64
}

// Response модель ответа на создание бронирования
type Response struct {
	BookingID int64
	Status    domain.BookingStatus
	StartTime types.TimeString
	EndTime   types.TimeString
	Date      time.Time

	// VerificationSent true, если клиенту отправлена ссылка подтверждения
	VerificationSent bool
}
