package reschedule_booking

import "fmt"

// validateRequest проверяет корректность входных параметров запроса
func validateRequest(req Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: booking id must be positive", ErrInvalidInput)
	}
	if req.ProviderID <= 0 {
		return fmt.Errorf("%w: provider id must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: start time: %v", ErrInvalidInput, err)
	}

	return nil
}
