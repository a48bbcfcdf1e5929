package create_booking

import (
	"fmt"
	"net/mail"

	"github.com/clockly/booking-service/internal/domain"
)

// validateRequest проверяет корректность входных параметров запроса
func validateRequest(req Request) error {
	if req.ProviderSlug == "" {
		return fmt.Errorf("%w: provider slug is required", ErrInvalidInput)
	}
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: service id must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: start time: %v", ErrInvalidInput, err)
	}
	if req.CustomerName == "" {
		return fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	}
	if len(req.CustomerName) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customer name is too long", ErrInvalidInput)
	}
	if req.CustomerEmail == "" {
		return fmt.Errorf("%w: customer email is required", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(req.CustomerEmail); err != nil {
		return fmt.Errorf("%w: customer email is invalid", ErrInvalidInput)
	}
	if req.Note != nil && len(*req.Note) > domain.MaxNoteLength {
		return fmt.Errorf("%w: note is too long", ErrInvalidInput)
	}

	return nil
}
