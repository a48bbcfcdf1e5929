package create_booking

import (
	"time"

	"github.com/clockly/booking-service/internal/domain"
	createBooking "github.com/clockly/booking-service/internal/usecase/create_booking"
	"github.com/clockly/booking-service/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ServiceID     int64   `json:"serviceId"`
	Date          string  `json:"date"`      // "2026-09-10"
	StartTime     string  `json:"startTime"` // "10:00"
	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	CustomerPhone string  `json:"customerPhone,omitempty"`
	Note          *string `json:"note,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID               int64  `json:"id"`
	Status           string `json:"status"`
	Date             string `json:"date"`
	StartTime        string `json:"startTime"`
	EndTime          string `json:"endTime"`
	VerificationSent bool   `json:"verificationSent"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(slug string, authProviderID *int64) (createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return createBooking.Request{}, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return createBooking.Request{}, err
	}

	return createBooking.Request{
		ProviderSlug:   slug,
		ServiceID:      r.ServiceID,
		Date:           date,
		StartTime:      startTime,
		CustomerName:   r.CustomerName,
		CustomerEmail:  r.CustomerEmail,
		CustomerPhone:  r.CustomerPhone,
		Note:           r.Note,
		AuthProviderID: authProviderID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:               resp.BookingID,
		Status:           string(resp.Status),
		Date:             resp.Date.Format(domain.DateFormat),
		StartTime:        resp.StartTime.String(),
		EndTime:          resp.EndTime.String(),
		VerificationSent: resp.VerificationSent,
	}
}
