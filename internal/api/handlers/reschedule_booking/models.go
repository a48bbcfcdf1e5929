package reschedule_booking

import (
	"time"

	"github.com/clockly/booking-service/internal/domain"
	rescheduleBooking "github.com/clockly/booking-service/internal/usecase/reschedule_booking"
	"github.com/clockly/booking-service/pkg/types"
)

// RescheduleBookingRequest HTTP request model
type RescheduleBookingRequest struct {
	Date      string `json:"date"`      // "2026-09-10"
	StartTime string `json:"startTime"` // "14:00"
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID        int64  `json:"id"`
	Status    string `json:"status"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleBookingRequest) ToUseCaseRequest(bookingID, providerID int64) (rescheduleBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return rescheduleBooking.Request{}, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return rescheduleBooking.Request{}, err
	}

	return rescheduleBooking.Request{
		BookingID:  bookingID,
		ProviderID: providerID,
		Date:       date,
		StartTime:  startTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp rescheduleBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:        resp.BookingID,
		Status:    string(resp.Status),
		Date:      resp.Date.Format(domain.DateFormat),
		StartTime: resp.StartTime.String(),
		EndTime:   resp.EndTime.String(),
	}
}
