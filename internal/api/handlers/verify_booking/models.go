package verify_booking

import (
	"github.com/clockly/booking-service/internal/domain"
	verifyBooking "github.com/clockly/booking-service/internal/usecase/verify_booking"
)

// VerifyBookingResponse HTTP response model
type VerifyBookingResponse struct {
	BookingID       int64  `json:"bookingId"`
	Status          string `json:"status"`
	Date            string `json:"date"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	AlreadyVerified bool   `json:"alreadyVerified"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp verifyBooking.Response) *VerifyBookingResponse {
	return &VerifyBookingResponse{
		BookingID:       resp.BookingID,
		Status:          string(resp.Status),
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		AlreadyVerified: resp.AlreadyVerified,
	}
}
