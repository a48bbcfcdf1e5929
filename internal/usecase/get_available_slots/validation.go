package get_available_slots

import "fmt"

// validateRequest проверяет корректность входных параметров запроса
func validateRequest(req Request) error {
	if req.ProviderSlug == "" {
		return fmt.Errorf("%w: provider slug is required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.ServiceID != nil && *req.ServiceID <= 0 {
		return fmt.Errorf("%w: service id must be positive", ErrInvalidInput)
	}

	return nil
}
