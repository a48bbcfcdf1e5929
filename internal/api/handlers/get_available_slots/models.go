package get_available_slots

import (
	"github.com/clockly/booking-service/internal/domain"
	getAvailableSlots "github.com/clockly/booking-service/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель одного слота
type SlotResponse struct {
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "11:00"
}

// AvailableSlotsResponse HTTP модель ответа со списком слотов
type AvailableSlotsResponse struct {
	ProviderSlug    string         `json:"providerSlug"`
	Date            string         `json:"date"` // "2026-09-10"
	ServiceID       *int64         `json:"serviceId,omitempty"`
	DurationMinutes int            `json:"durationMinutes"`
	Slots           []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		slots = append(slots, SlotResponse{
			StartTime: slot.StartTime.String(),
			EndTime:   slot.EndTime.String(),
		})
	}

	return &AvailableSlotsResponse{
		ProviderSlug:    resp.ProviderSlug,
		Date:            resp.Date.Format(domain.DateFormat),
		ServiceID:       resp.ServiceID,
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}
